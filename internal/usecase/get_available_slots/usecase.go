package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	services ServiceRepository
	engine   AvailabilityEngine
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(services ServiceRepository, engine AvailabilityEngine, logger Logger) *UseCase {
	return &UseCase{
		services: services,
		engine:   engine,
		logger:   logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date)

	// 1. Разбор даты
	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(req.Date), uc.engine.Location())
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: malformed date %q", req.Date)
		return nil, fmt.Errorf("%w: date %q", availability.ErrMalformedInput, req.Date)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", availability.ErrMalformedInput)
	}

	// 2. Услуга для описания слотов
	service, err := uc.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, availability.ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	// 3. Свободные начала
	starts, err := uc.engine.ComputeFreeSlots(ctx, date, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: compute failed for %s: %v", req.Date, err)
		return nil, err
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(service.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: slot end: %v", ErrInternal, err)
		}
		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d, date=%s", len(slots), req.ServiceID, req.Date)

	return &Response{
		Date:            date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
