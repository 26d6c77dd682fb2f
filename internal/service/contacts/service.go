package contacts

import (
	"context"
	"errors"
	"fmt"

	contactRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/contact"
	"github.com/m04kA/SMC-BarberBooking/internal/service/contacts/models"
)

// Service сервис обращений через форму обратной связи
type Service struct {
	repo      ContactRepository
	validator InputValidator
	phones    PhoneNormalizer
	logger    Logger
}

// NewService создает новый экземпляр сервиса обращений
func NewService(repo ContactRepository, validator InputValidator, phones PhoneNormalizer, logger Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		phones:    phones,
		logger:    logger,
	}
}

// Create сохраняет новое обращение
func (s *Service) Create(ctx context.Context, req *models.CreateContactRequest) (*models.ContactResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Create: invalid contact: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phone, err := s.phones.NormalizeE164(req.Phone)
	if err != nil {
		s.logger.Warn("Create: invalid phone %q: %v", req.Phone, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, req.ToDomain(phone))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: contact id=%d created", created.ID)
	return models.FromDomainContact(created), nil
}

// GetByID получает обращение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ContactResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainContact(c), nil
}

// List все обращения, новые первыми
func (s *Service) List(ctx context.Context) (*models.ContactListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainContactList(items), nil
}

// Update частично обновляет обращение
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateContactRequest) (*models.ContactResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Update: invalid contact id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var phone *string
	if req.Phone != nil {
		normalized, err := s.phones.NormalizeE164(*req.Phone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		phone = &normalized
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}
	req.ApplyTo(current, phone)

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: contact id=%d updated", id)
	return models.FromDomainContact(updated), nil
}

// Delete удаляет обращение
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}
	s.logger.Info("Delete: contact id=%d deleted", id)
	return nil
}

// Stats сводка по обращениям
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainStats(stats), nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, contactRepo.ErrContactNotFound) {
		s.logger.Warn("%s: contact id=%d not found", op, id)
		return ErrContactNotFound
	}
	s.logger.Error("%s: repository error for contact id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
