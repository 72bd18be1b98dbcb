package create_block

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// MaxReasonLength максимальная длина причины блокировки
const MaxReasonLength = 500

// Request модель запроса на создание блокировки
type Request struct {
	MerchantID       int64
	StaffID          int64
	LocationID       *int64
	StartTime        time.Time
	EndTime          time.Time
	Reason           *string
	SuppressWarnings bool
}

// Response модель результата создания блокировки
type Response struct {
	Block       *domain.StaffAvailabilityBlock
	Warning     bool              // есть конфликты и предупреждения не подавлены
	Conflicts   []*domain.Booking // будущие активные бронирования под блокировкой, по времени начала
	MergedCount int               // сколько существующих блокировок вошло в новую
}
