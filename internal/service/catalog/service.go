package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	hoursRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/businesshours"
	servicesRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Service каталог: услуги и часы работы
type Service struct {
	servicesRepo ServiceRepository
	hoursRepo    BusinessHoursRepository
	appointments AppointmentCounter
	validator    InputValidator
	txManager    TransactionManager
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	servicesRepo ServiceRepository,
	hoursRepo BusinessHoursRepository,
	appointments AppointmentCounter,
	validator InputValidator,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		servicesRepo: servicesRepo,
		hoursRepo:    hoursRepo,
		appointments: appointments,
		validator:    validator,
		txManager:    txManager,
		loc:          loc,
		logger:       logger,
	}
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q", req.Name)

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.servicesRepo.Create(ctx, req.ToDomainService())
	if err != nil {
		if errors.Is(err, servicesRepo.ErrDuplicateName) {
			s.logger.Warn("CreateService: name=%q already exists", req.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.servicesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainService(service), nil
}

// ListServices список услуг, при activeOnly только активные
func (s *Service) ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.servicesRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services, activeOnly=%t", len(services), activeOnly)
	return models.FromDomainServiceList(services), nil
}

// UpdateService обновляет переданные поля услуги.
// Длительность уже сделанных записей не меняется, она сохранена в самих записях
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: id=%d", id)

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		service, err := s.servicesRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		req.ApplyToService(service)

		updated, err := s.servicesRepo.Update(txCtx, service)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, servicesRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, servicesRepo.ErrDuplicateName):
			return nil, ErrDuplicateName
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", id)
	return models.FromDomainService(result), nil
}

// DeleteService удаляет услугу. Если на нее ссылается хоть одна запись, услуга только выключается
func (s *Service) DeleteService(ctx context.Context, id int64) (*models.DeleteServiceResponse, error) {
	s.logger.Info("DeleteService: id=%d", id)

	resp := &models.DeleteServiceResponse{ID: id}
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.servicesRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		count, err := s.appointments.CountByService(txCtx, id)
		if err != nil {
			return err
		}

		if count == 0 {
			err := s.servicesRepo.Delete(txCtx, id)
			if err == nil {
				resp.Deleted = true
				return nil
			}
			if !errors.Is(err, servicesRepo.ErrServiceReferenced) {
				return err
			}
		}

		resp.Deactivated = true
		return s.servicesRepo.SetActive(txCtx, id, false)
	})
	if err != nil {
		if errors.Is(err, servicesRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: DeleteService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteService: service id=%d deleted=%t deactivated=%t", id, resp.Deleted, resp.Deactivated)
	return resp, nil
}

// ListBusinessHours неделя с понедельника. День без правила показывается закрытым
func (s *Service) ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error) {
	rules, err := s.hoursRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinessHours - repository error: %w", ErrInternal, err)
	}

	byDay := make(map[time.Weekday]*domain.BusinessHoursRule, len(rules))
	for _, rule := range rules {
		byDay[rule.DayOfWeek] = rule
	}

	resp := &models.BusinessHoursListResponse{Days: make([]models.BusinessHoursResponse, 0, len(domain.WeekOrder))}
	for _, day := range domain.WeekOrder {
		rule, ok := byDay[day]
		if !ok {
			rule = &domain.BusinessHoursRule{DayOfWeek: day}
		}
		resp.Days = append(resp.Days, *models.FromDomainRule(rule))
	}
	return resp, nil
}

// GetBusinessHours правило дня недели ("monday")
func (s *Service) GetBusinessHours(ctx context.Context, dayName string) (*models.BusinessHoursResponse, error) {
	day, err := domain.ParseWeekday(dayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rule, err := s.hoursRepo.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetBusinessHours: repository error for day=%s: %v", dayName, err)
		return nil, fmt.Errorf("%w: GetBusinessHours - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainRule(rule), nil
}

// UpsertBusinessHours создает или перезаписывает правило дня недели
func (s *Service) UpsertBusinessHours(ctx context.Context, dayName string, req *models.UpsertBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("UpsertBusinessHours: day=%s open=%s close=%s active=%t", dayName, req.OpenTime, req.CloseTime, req.IsActive)

	day, err := domain.ParseWeekday(dayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("UpsertBusinessHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rule := &domain.BusinessHoursRule{
		DayOfWeek: day,
		OpenTime:  types.TimeString(req.OpenTime),
		CloseTime: types.TimeString(req.CloseTime),
		IsActive:  req.IsActive,
	}
	if rule.IsActive && !rule.OpenTime.IsBefore(rule.CloseTime) {
		return nil, fmt.Errorf("%w: closeTime must be after openTime", ErrInvalidInput)
	}

	saved, err := s.hoursRepo.Upsert(ctx, rule)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: closeTime must be after openTime", ErrInvalidInput)
		}
		s.logger.Error("UpsertBusinessHours: repository error for day=%s: %v", dayName, err)
		return nil, fmt.Errorf("%w: UpsertBusinessHours - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpsertBusinessHours: successfully saved day=%s", dayName)
	return models.FromDomainRule(saved), nil
}

// ToggleBusinessHours открывает или закрывает день недели
func (s *Service) ToggleBusinessHours(ctx context.Context, dayName string) (*models.BusinessHoursResponse, error) {
	day, err := domain.ParseWeekday(dayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rule, err := s.hoursRepo.Toggle(ctx, day)
	if err != nil {
		switch {
		case errors.Is(err, hoursRepo.ErrRuleNotFound):
			return nil, ErrRuleNotFound
		case errors.Is(err, hoursRepo.ErrInvalidRange):
			return nil, fmt.Errorf("%w: closeTime must be after openTime", ErrInvalidInput)
		}
		s.logger.Error("ToggleBusinessHours: repository error for day=%s: %v", dayName, err)
		return nil, fmt.Errorf("%w: ToggleBusinessHours - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ToggleBusinessHours: day=%s is now active=%t", dayName, rule.IsActive)
	return models.FromDomainRule(rule), nil
}

// IsOpen открыт ли барбершоп в дату и время. Границы часов работы включаются
func (s *Service) IsOpen(ctx context.Context, dateStr, timeStr string) (*models.OpenStatusResponse, error) {
	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(dateStr), s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidInput, dateStr)
	}
	at, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: time %q", ErrInvalidInput, timeStr)
	}

	resp := &models.OpenStatusResponse{
		Date:      date.Format(domain.DateFormat),
		Time:      at.String(),
		DayOfWeek: domain.WeekdayName(date.Weekday()),
	}

	rule, err := s.hoursRepo.GetByDay(ctx, date.Weekday())
	if err != nil {
		if errors.Is(err, hoursRepo.ErrRuleNotFound) {
			return resp, nil
		}
		s.logger.Error("IsOpen: repository error for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: IsOpen - repository error: %w", ErrInternal, err)
	}

	resp.IsOpen = rule.IsOpenAt(at)
	if rule.IsActive {
		resp.OpenTime = &rule.OpenTime
		resp.CloseTime = &rule.CloseTime
	}
	return resp, nil
}
