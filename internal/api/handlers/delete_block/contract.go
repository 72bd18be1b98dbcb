package delete_block

import "context"

type BlocksService interface {
	Delete(ctx context.Context, merchantID, blockID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
