package evaluate_slot

import (
	"context"

	evaluateSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_slot"
)

type EvaluateSlotUseCase interface {
	Execute(ctx context.Context, req *evaluateSlot.Request) (*evaluateSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
