package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Writer часть kafka.Writer, которая нужна публикатору
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
