package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	MerchantID       int64
	StaffID          int64
	ServiceID        int64
	StartDate        time.Time // дата без времени, первый день диапазона
	EndDate          time.Time // дата без времени, последний день диапазона включительно
	Timezone         string    // IANA, пусто - UTC
	DurationOverride *int      // суммарная длительность нескольких услуг, минуты
}

// Response модель ответа со списком слотов
type Response struct {
	MerchantID int64
	StaffID    int64
	ServiceID  int64
	Timezone   string
	Slots      []domain.Slot // упорядочены по времени начала
}

// Options параметры сетки слотов
type Options struct {
	SlotIntervalMinutes int // шаг сетки
	MaxRangeDays        int // максимальная длина диапазона дат
}
