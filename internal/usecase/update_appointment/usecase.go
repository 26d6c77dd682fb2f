package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const operation = "update"

// UseCase use case для изменения и переноса записи
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

// Execute применяет изменения. Перенос (услуга, дата или время) проходит те же проверки, что и новая запись,
// без учета самой переносимой записи. Отмененную запись можно только поправить, но не перенести
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d", req.ID)

	if err := uc.validator.Struct(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var phone *string
	if req.CustomerPhone != nil {
		normalized, err := uc.phones.NormalizeE164(*req.CustomerPhone)
		if err != nil {
			uc.logger.Warn("UpdateAppointment: invalid phone: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		phone = &normalized
	}

	var result *domain.Appointment
	rescheduled := false

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := uc.repo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: get appointment: %w", ErrInternal, err)
		}

		if req.reschedules(appt) {
			if appt.IsCancelled() {
				return ErrAppointmentCancelled
			}
			if err := uc.reschedule(txCtx, appt, req); err != nil {
				return err
			}
			rescheduled = true
		}

		if req.CustomerName != nil {
			appt.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if phone != nil {
			appt.CustomerPhone = *phone
		}
		if req.CustomerEmail != nil {
			appt.CustomerEmail = req.CustomerEmail
		}
		if req.Notes != nil {
			appt.Notes = req.Notes
		}

		updated, err := uc.repo.Update(txCtx, appt)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotConflict):
				return availability.ErrSlotConflict
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrServiceReference):
				return availability.ErrServiceNotFound
			default:
				return fmt.Errorf("%w: update appointment: %w", ErrInternal, err)
			}
		}

		result = updated
		return nil
	})
	if err != nil {
		uc.logger.Warn("UpdateAppointment: id=%d failed: %v", req.ID, err)
		if rescheduled || errors.Is(err, availability.ErrSlotConflict) {
			uc.observe(err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d, rescheduled=%t", result.ID, rescheduled)
	if rescheduled {
		uc.outcomes.ObserveBooking(operation, "OK")
	}

	return &Response{Appointment: result, Mirror: uc.mirror(ctx, result)}, nil
}

// reschedule проверяет новый интервал под блокировкой даты и переносит снимок услуги
func (uc *UseCase) reschedule(ctx context.Context, appt *domain.Appointment, req *Request) error {
	check := availability.BookingCheck{
		Date:      ptr.Value(req.Date),
		Time:      ptr.Value(req.Time),
		ServiceID: appt.ServiceID,
		Exclude:   availability.Exclude{AppointmentID: appt.ID},
	}
	if check.Date == "" {
		check.Date = appt.Date.Format(domain.DateFormat)
	}
	if check.Time == "" {
		check.Time = appt.StartTime.String()
	}
	if req.ServiceID != nil {
		check.ServiceID = *req.ServiceID
	}
	if appt.ExternalEventID != nil {
		check.Exclude.ExternalEventID = *appt.ExternalEventID
	}

	validated, err := uc.engine.ValidateBookingRequest(ctx, check, uc.engine.Now())
	if err != nil {
		return err
	}

	if err := uc.repo.LockDate(ctx, validated.Date); err != nil {
		return fmt.Errorf("%w: lock date: %w", ErrInternal, err)
	}
	free, err := uc.engine.IsIntervalFree(ctx, validated.Date, validated.Interval.Start, validated.Interval.End, check.Exclude)
	if err != nil {
		return err
	}
	if !free {
		return availability.ErrSlotConflict
	}

	appt.ServiceID = validated.Service.ID
	appt.ServiceName = validated.Service.Name
	appt.ServicePrice = validated.Service.Price
	appt.DurationMinutes = validated.Service.DurationMinutes
	appt.Date = validated.Date
	appt.StartTime = validated.Start
	return nil
}

func (uc *UseCase) mirror(ctx context.Context, appt *domain.Appointment) domain.MirrorResult {
	if uc.calendar == nil || appt.ExternalEventID == nil || !appt.IsConfirmed() {
		return domain.MirrorResult{Status: domain.MirrorSkipped}
	}

	ref, err := uc.calendar.UpdateEvent(ctx, *appt.ExternalEventID, appt)
	if err != nil {
		uc.logger.Error("UpdateAppointment: mirror failed for appointment id=%d: %v", appt.ID, err)
		return domain.MirrorResult{Status: domain.MirrorFailed, Code: domain.ReasonMirrorFailed}
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
