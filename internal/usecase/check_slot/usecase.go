package check_slot

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// UseCase use case проверки одного слота перед бронированием
type UseCase struct {
	engine AvailabilityEngine
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AvailabilityEngine, logger Logger) *UseCase {
	return &UseCase{engine: engine, logger: logger}
}

// Execute прогоняет все проверки бронирования без записи.
// Отказ возвращается как Available=false, ошибкой остаются только недоступность хранилища или календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	_, err := uc.engine.ValidateBookingRequest(ctx, availability.BookingCheck{
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
	}, uc.engine.Now())
	if err == nil {
		return &Response{Available: true}, nil
	}

	code, ok := availability.ReasonOf(err)
	if !ok {
		uc.logger.Error("CheckSlot: date=%s time=%s service=%d: %v", req.Date, req.Time, req.ServiceID, err)
		return nil, err
	}

	uc.logger.Info("CheckSlot: date=%s time=%s service=%d unavailable: %s", req.Date, req.Time, req.ServiceID, code)
	return &Response{Available: false, Reason: code, Message: err.Error()}, nil
}
