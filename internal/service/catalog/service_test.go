package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	hoursRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/businesshours"
	servicesRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

type memServices struct {
	items  map[int64]*domain.Service
	nextID int64
}

func (m *memServices) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	for _, existing := range m.items {
		if existing.Name == s.Name {
			return nil, servicesRepo.ErrDuplicateName
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.items[s.ID] = s
	return s, nil
}

func (m *memServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, servicesRepo.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memServices) List(_ context.Context, activeOnly bool) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for id := int64(1); id <= m.nextID; id++ {
		if s, ok := m.items[id]; ok && (!activeOnly || s.IsActive) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memServices) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	for id, existing := range m.items {
		if id != s.ID && existing.Name == s.Name {
			return nil, servicesRepo.ErrDuplicateName
		}
	}
	m.items[s.ID] = s
	return s, nil
}

func (m *memServices) SetActive(_ context.Context, id int64, active bool) error {
	s, ok := m.items[id]
	if !ok {
		return servicesRepo.ErrServiceNotFound
	}
	s.IsActive = active
	return nil
}

func (m *memServices) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return servicesRepo.ErrServiceNotFound
	}
	delete(m.items, id)
	return nil
}

type memHours map[time.Weekday]*domain.BusinessHoursRule

func (m memHours) GetByDay(_ context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	r, ok := m[day]
	if !ok {
		return nil, hoursRepo.ErrRuleNotFound
	}
	return r, nil
}

func (m memHours) List(context.Context) ([]*domain.BusinessHoursRule, error) {
	out := make([]*domain.BusinessHoursRule, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	return out, nil
}

func (m memHours) Upsert(_ context.Context, rule *domain.BusinessHoursRule) (*domain.BusinessHoursRule, error) {
	rule.UpdatedAt = time.Now()
	m[rule.DayOfWeek] = rule
	return rule, nil
}

func (m memHours) Toggle(_ context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	r, ok := m[day]
	if !ok {
		return nil, hoursRepo.ErrRuleNotFound
	}
	r.IsActive = !r.IsActive
	return r, nil
}

type counter map[int64]int

func (c counter) CountByService(_ context.Context, id int64) (int, error) { return c[id], nil }

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService(counts counter) (*Service, *memServices, memHours) {
	svc := &memServices{items: map[int64]*domain.Service{}}
	hours := memHours{
		time.Monday: {DayOfWeek: time.Monday, OpenTime: "08:00", CloseTime: "20:00", IsActive: true},
		time.Sunday: {DayOfWeek: time.Sunday, OpenTime: "08:00", CloseTime: "12:00", IsActive: false},
	}
	return NewService(svc, hours, counts, validator.New(), directTx{}, time.UTC, logger.NewNop()), svc, hours
}

func TestCreateService(t *testing.T) {
	s, _, _ := newService(counter{})
	ctx := context.Background()

	created, err := s.CreateService(ctx, &models.CreateServiceRequest{Name: "  Corte  ", Price: 25})
	require.NoError(t, err)
	assert.Equal(t, "Corte", created.Name)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, created.DurationMinutes)
	assert.True(t, created.IsActive)

	_, err = s.CreateService(ctx, &models.CreateServiceRequest{Name: "Corte", Price: 30})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.CreateService(ctx, &models.CreateServiceRequest{Name: "Barba", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.CreateService(ctx, &models.CreateServiceRequest{Name: "Barba", Price: 10, DurationMinutes: 600})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateService(t *testing.T) {
	s, _, _ := newService(counter{})
	ctx := context.Background()

	created, err := s.CreateService(ctx, &models.CreateServiceRequest{Name: "Corte", Price: 25})
	require.NoError(t, err)
	_, err = s.CreateService(ctx, &models.CreateServiceRequest{Name: "Barba", Price: 15})
	require.NoError(t, err)

	updated, err := s.UpdateService(ctx, created.ID, &models.UpdateServiceRequest{Price: ptr.Ptr(30.0), DurationMinutes: ptr.Ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.Equal(t, "Corte", updated.Name)

	_, err = s.UpdateService(ctx, created.ID, &models.UpdateServiceRequest{Name: ptr.Ptr("Barba")})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.UpdateService(ctx, 99, &models.UpdateServiceRequest{Price: ptr.Ptr(1.0)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeleteService(t *testing.T) {
	s, repo, _ := newService(counter{1: 3})
	ctx := context.Background()

	_, err := s.CreateService(ctx, &models.CreateServiceRequest{Name: "Corte", Price: 25})
	require.NoError(t, err)
	_, err = s.CreateService(ctx, &models.CreateServiceRequest{Name: "Barba", Price: 15})
	require.NoError(t, err)

	// есть записи: только выключение
	resp, err := s.DeleteService(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.Deactivated)
	assert.False(t, resp.Deleted)
	require.Contains(t, repo.items, int64(1))
	assert.False(t, repo.items[1].IsActive)

	resp, err = s.DeleteService(ctx, 2)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.NotContains(t, repo.items, int64(2))

	_, err = s.DeleteService(ctx, 2)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	list, err := s.ListServices(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, list.Services)

	list, err = s.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list.Services, 1)
}

func TestListBusinessHours_WeekOrder(t *testing.T) {
	s, _, _ := newService(counter{})

	resp, err := s.ListBusinessHours(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "monday", resp.Days[0].DayOfWeek)
	assert.True(t, resp.Days[0].IsActive)
	assert.Equal(t, "tuesday", resp.Days[1].DayOfWeek)
	assert.False(t, resp.Days[1].IsActive)
	assert.Equal(t, "sunday", resp.Days[6].DayOfWeek)
}

func TestUpsertAndToggleBusinessHours(t *testing.T) {
	s, _, hours := newService(counter{})
	ctx := context.Background()

	saved, err := s.UpsertBusinessHours(ctx, "Tuesday", &models.UpsertBusinessHoursRequest{OpenTime: "09:00", CloseTime: "19:00", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "tuesday", saved.DayOfWeek)
	assert.Equal(t, types.TimeString("19:00"), hours[time.Tuesday].CloseTime)

	_, err = s.UpsertBusinessHours(ctx, "tuesday", &models.UpsertBusinessHoursRequest{OpenTime: "19:00", CloseTime: "09:00", IsActive: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.UpsertBusinessHours(ctx, "tuesday", &models.UpsertBusinessHoursRequest{OpenTime: "9", CloseTime: "19:00", IsActive: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.UpsertBusinessHours(ctx, "someday", &models.UpsertBusinessHoursRequest{OpenTime: "09:00", CloseTime: "19:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	toggled, err := s.ToggleBusinessHours(ctx, "sunday")
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	_, err = s.ToggleBusinessHours(ctx, "wednesday")
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestIsOpen(t *testing.T) {
	s, _, _ := newService(counter{})
	ctx := context.Background()

	tests := []struct {
		name string
		date string
		time string
		open bool
	}{
		{name: "inside", date: "2025-03-10", time: "10:00", open: true},
		{name: "at opening", date: "2025-03-10", time: "08:00", open: true},
		{name: "at closing", date: "2025-03-10", time: "20:00", open: true},
		{name: "after closing", date: "2025-03-10", time: "20:01", open: false},
		{name: "inactive day", date: "2025-03-09", time: "10:00", open: false},
		{name: "no rule", date: "2025-03-11", time: "10:00", open: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.IsOpen(ctx, tt.date, tt.time)
			require.NoError(t, err)
			assert.Equal(t, tt.open, resp.IsOpen)
		})
	}

	_, err := s.IsOpen(ctx, "2025-13-01", "10:00")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
