package contacts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	contactRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/contact"
	"github.com/m04kA/SMC-BarberBooking/internal/service/contacts/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/phone"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

type memContacts struct {
	items  map[int64]*domain.Contact
	nextID int64
}

func (m *memContacts) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	m.nextID++
	c.ID = m.nextID
	m.items[c.ID] = c
	return c, nil
}

func (m *memContacts) GetByID(_ context.Context, id int64) (*domain.Contact, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, contactRepo.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memContacts) List(_ context.Context) ([]*domain.Contact, error) {
	out := make([]*domain.Contact, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memContacts) Update(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	if _, ok := m.items[c.ID]; !ok {
		return nil, contactRepo.ErrContactNotFound
	}
	m.items[c.ID] = c
	return c, nil
}

func (m *memContacts) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return contactRepo.ErrContactNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memContacts) Stats(_ context.Context) (*domain.ContactStats, error) {
	stats := &domain.ContactStats{
		ByPreference:    map[domain.ContactPreference]int{},
		ByPreferredTime: map[domain.PreferredTime]int{},
	}
	for _, c := range m.items {
		stats.Total++
		if c.OptIn {
			stats.OptedIn++
		}
		stats.ByPreference[c.Preference]++
		if c.PreferredTime != nil {
			stats.ByPreferredTime[*c.PreferredTime]++
		}
	}
	return stats, nil
}

func newTestService() (*Service, *memContacts) {
	repo := &memContacts{items: map[int64]*domain.Contact{}}
	return NewService(repo, validator.New(), phone.NewNormalizer("BR"), logger.NewNop()), repo
}

func TestService_Create(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateContactRequest{
		Name:  "  Carla ",
		Email: "Carla@Example.com",
		Phone: "(11) 98765-4321",
		OptIn: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla", resp.Name)
	assert.Equal(t, "carla@example.com", resp.Email)
	assert.Equal(t, "+5511987654321", resp.Phone)
	assert.Equal(t, "whatsapp", resp.Preference)
	assert.Nil(t, resp.PreferredTime)
	assert.Len(t, repo.items, 1)
}

func TestService_Create_Invalid(t *testing.T) {
	svc, _ := newTestService()

	cases := []models.CreateContactRequest{
		{Name: "Carla", Email: "not-an-email", Phone: "11987654321"},
		{Name: "Carla", Email: "c@example.com", Phone: "11987654321", Preference: ptr.Ptr("telegram")},
		{Name: "Carla", Email: "c@example.com", Phone: "11987654321", PreferredTime: ptr.Ptr("night")},
		{Name: "Carla", Email: "c@example.com", Phone: "123"},
	}
	for _, req := range cases {
		req := req
		_, err := svc.Create(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateContactRequest{
		Name: "Davi", Email: "d@example.com", Phone: "11987654321", PreferredTime: ptr.Ptr("morning"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateContactRequest{
		Preference:    ptr.Ptr("email"),
		PreferredTime: ptr.Ptr(""),
		OptIn:         ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "email", updated.Preference)
	assert.Nil(t, updated.PreferredTime)
	assert.True(t, updated.OptIn)
	assert.Equal(t, "Davi", updated.Name)

	_, err = svc.Update(ctx, 999, &models.UpdateContactRequest{Name: ptr.Ptr("Eva")})
	assert.ErrorIs(t, err, ErrContactNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrContactNotFound)
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateContactRequest{
		Name: "Ana", Email: "a@example.com", Phone: "11987654321", OptIn: true, PreferredTime: ptr.Ptr("evening"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateContactRequest{
		Name: "Bia", Email: "b@example.com", Phone: "11987654322", Preference: ptr.Ptr("phone"),
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.OptedIn)
	assert.Equal(t, map[string]int{"whatsapp": 1, "phone": 1}, stats.ByPreference)
	assert.Equal(t, map[string]int{"evening": 1}, stats.ByPreferredTime)
}
