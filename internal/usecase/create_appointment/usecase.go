package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
)

const operation = "create"

// UseCase use case для создания записи
type UseCase struct {
	repo      AppointmentRepository
	engine    AvailabilityEngine
	calendar  CalendarMirror
	validator InputValidator
	phones    PhoneNormalizer
	outcomes  OutcomeObserver
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AppointmentRepository,
	engine AvailabilityEngine,
	calendar CalendarMirror,
	validator InputValidator,
	phones PhoneNormalizer,
	outcomes OutcomeObserver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:      repo,
		engine:    engine,
		calendar:  calendar,
		validator: validator,
		phones:    phones,
		outcomes:  outcomes,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота повторяется под блокировкой даты, вставку дополнительно страхует EXCLUDE-ограничение.
// Ошибка календаря после коммита не откатывает запись и возвращается как Mirror.Status = failed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%d, date=%s, time=%s", req.ServiceID, req.Date, req.Time)

	// 1. Валидация полей клиента
	if err := uc.validator.Struct(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.observe(availability.ErrMalformedInput)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phone, err := uc.phones.NormalizeE164(req.CustomerPhone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid phone: %v", err)
		uc.observe(availability.ErrMalformedInput)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверки доступности
	validated, err := uc.engine.ValidateBookingRequest(ctx, availability.BookingCheck{
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
	}, uc.engine.Now())
	if err != nil {
		uc.logger.Warn("CreateAppointment: rejected: %v", err)
		uc.observe(err)
		return nil, err
	}

	appt := &domain.Appointment{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   phone,
		CustomerEmail:   req.CustomerEmail,
		ServiceID:       validated.Service.ID,
		ServiceName:     validated.Service.Name,
		ServicePrice:    validated.Service.Price,
		DurationMinutes: validated.Service.DurationMinutes,
		Date:            validated.Date,
		StartTime:       validated.Start,
		Status:          domain.StatusConfirmed,
		Notes:           req.Notes,
	}

	// 3. Повторная проверка и вставка под блокировкой даты
	var result *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.repo.LockDate(txCtx, validated.Date); err != nil {
			return fmt.Errorf("%w: lock date: %w", ErrInternal, err)
		}

		free, err := uc.engine.IsIntervalFree(txCtx, validated.Date, validated.Interval.Start, validated.Interval.End, availability.Exclude{})
		if err != nil {
			return err
		}
		if !free {
			return availability.ErrSlotConflict
		}

		created, err := uc.repo.InsertConfirmed(txCtx, appt)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotConflict):
				return availability.ErrSlotConflict
			case errors.Is(err, appointmentRepo.ErrServiceReference):
				return availability.ErrServiceNotFound
			default:
				return fmt.Errorf("%w: insert appointment: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, availability.ErrSlotConflict) {
			uc.logger.Warn("CreateAppointment: slot %s %s taken concurrently", req.Date, req.Time)
		} else {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		}
		uc.observe(err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 4. Зеркалирование во внешний календарь
	mirror := uc.mirror(ctx, result)
	if mirror.Status == domain.MirrorFailed {
		uc.outcomes.ObserveBooking(operation, string(domain.ReasonMirrorFailed))
	} else {
		uc.outcomes.ObserveBooking(operation, "OK")
	}

	return &Response{Appointment: result, Mirror: mirror}, nil
}

func (uc *UseCase) mirror(ctx context.Context, appt *domain.Appointment) domain.MirrorResult {
	if uc.calendar == nil {
		return domain.MirrorResult{Status: domain.MirrorSkipped}
	}

	ref, err := uc.calendar.CreateEvent(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateAppointment: mirror failed for appointment id=%d: %v", appt.ID, err)
		return domain.MirrorResult{Status: domain.MirrorFailed, Code: domain.ReasonMirrorFailed}
	}

	// Событие уже создано: ошибка сохранения ссылки не меняет итог
	if err := uc.repo.SetExternalEvent(ctx, appt.ID, ref); err != nil {
		uc.logger.Error("CreateAppointment: failed to store event id=%s for appointment id=%d: %v", ref.ID, appt.ID, err)
	} else {
		appt.ExternalEventID = &ref.ID
		appt.ExternalEventLink = &ref.Link
	}

	return domain.MirrorResult{Status: domain.MirrorMirrored, EventID: ref.ID, EventLink: ref.Link}
}

func (uc *UseCase) observe(err error) {
	if code, ok := availability.ReasonOf(err); ok {
		uc.outcomes.ObserveBooking(operation, string(code))
		return
	}
	uc.outcomes.ObserveBooking(operation, string(domain.ReasonInternal))
}
