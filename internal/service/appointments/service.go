package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

// Service сервис для чтения, отмены и выгрузки записей
type Service struct {
	repo      AppointmentRepository
	calendar  CalendarMirror
	outcomes  OutcomeObserver
	txManager TransactionManager
	loc       *time.Location
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	calendar CalendarMirror,
	outcomes OutcomeObserver,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		calendar:  calendar,
		outcomes:  outcomes,
		txManager: txManager,
		loc:       loc,
		logger:    logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List записи за период с фильтром по статусу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	items, err := s.list(ctx, "List", req)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointmentList(items), nil
}

// ListByDate записи одного дня в порядке начала, включая отмененные
func (s *Service) ListByDate(ctx context.Context, date string) (*models.AppointmentListResponse, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: empty date", ErrInvalidInput)
	}
	items, err := s.list(ctx, "ListByDate", &models.ListRequest{From: &date, To: &date})
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointmentList(items), nil
}

func (s *Service) list(ctx context.Context, op string, req *models.ListRequest) ([]*domain.Appointment, error) {
	filter, err := req.ToDomainFilter(s.loc)
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, ErrInvalidTimeRange
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d appointments", op, len(items))
	return items, nil
}

// Cancel отменяет запись. Повторная отмена ничего не меняет и возвращает запись как есть.
// Событие календаря удаляется после коммита, ошибка удаления не откатывает отмену
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentWithMirrorResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	var (
		result      *domain.Appointment
		transitions bool
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if appt.IsCancelled() {
			result = appt
			return nil
		}

		if err := s.repo.SetStatus(txCtx, id, domain.StatusCancelled); err != nil {
			return err
		}

		result, err = s.repo.GetByID(txCtx, id)
		transitions = true
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	if !transitions {
		s.logger.Info("Cancel: appointment id=%d already cancelled", id)
		return models.WithMirror(result, domain.MirrorResult{Status: domain.MirrorSkipped}), nil
	}

	s.outcomes.ObserveBooking("cancel", "OK")
	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.WithMirror(result, s.removeEvent(ctx, result)), nil
}

func (s *Service) removeEvent(ctx context.Context, appt *domain.Appointment) domain.MirrorResult {
	if s.calendar == nil || appt.ExternalEventID == nil {
		return domain.MirrorResult{Status: domain.MirrorSkipped}
	}

	if err := s.calendar.DeleteEvent(ctx, *appt.ExternalEventID); err != nil {
		s.logger.Error("Cancel: failed to delete event id=%s for appointment id=%d: %v", *appt.ExternalEventID, appt.ID, err)
		return domain.MirrorResult{Status: domain.MirrorFailed, Code: domain.ReasonMirrorFailed, EventID: *appt.ExternalEventID}
	}
	return domain.MirrorResult{Status: domain.MirrorMirrored, EventID: *appt.ExternalEventID}
}
