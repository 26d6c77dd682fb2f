package update_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/validator"
)

var (
	loc, _ = time.LoadLocation("America/Sao_Paulo")
	now    = time.Date(2025, 3, 7, 10, 0, 0, 0, loc)
	monday = time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
)

type memoryStore struct {
	items   map[int64]*domain.Appointment
	locked  []string
	updates int
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memoryStore) LockDate(_ context.Context, date time.Time) error {
	s.locked = append(s.locked, date.Format(domain.DateFormat))
	return nil
}

func (s *memoryStore) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.updates++
	cp := *a
	s.items[a.ID] = &cp
	return a, nil
}

func (s *memoryStore) ListConfirmedByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range s.items {
		if a.IsConfirmed() && a.Date.Format(domain.DateFormat) == date.Format(domain.DateFormat) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, services.ErrServiceNotFound
}

type openHours struct{}

func (openHours) GetByDay(_ context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	return &domain.BusinessHoursRule{DayOfWeek: day, OpenTime: "08:00", CloseTime: "18:00", IsActive: true}, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type passPhones struct{}

func (passPhones) NormalizeE164(input string) (string, error) {
	if input == "bad" {
		return "", errors.New("invalid phone")
	}
	return input, nil
}

type fakeCalendar struct {
	updated []string
	err     error
}

func (c *fakeCalendar) UpdateEvent(_ context.Context, eventID string, _ *domain.Appointment) (*domain.ExternalEventRef, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.updated = append(c.updated, eventID)
	return &domain.ExternalEventRef{ID: eventID, Link: "link"}, nil
}

func seed() *memoryStore {
	return &memoryStore{items: map[int64]*domain.Appointment{
		1: {ID: 1, CustomerName: "Ana", CustomerPhone: "+5511987654321", ServiceID: 1, ServiceName: "Corte",
			DurationMinutes: 30, Date: monday, StartTime: "10:00", Status: domain.StatusConfirmed, ExternalEventID: ptr.Ptr("evt-1")},
		2: {ID: 2, CustomerName: "Bruno", CustomerPhone: "+5511912345678", ServiceID: 1, ServiceName: "Corte",
			DurationMinutes: 30, Date: monday, StartTime: "11:00", Status: domain.StatusConfirmed},
		3: {ID: 3, CustomerName: "Carla", CustomerPhone: "+5511911112222", ServiceID: 1, ServiceName: "Corte",
			DurationMinutes: 30, Date: monday, StartTime: "12:00", Status: domain.StatusCancelled},
	}}
}

func newUseCase(store *memoryStore, calendar CalendarMirror) *UseCase {
	engine := availability.NewEngine(
		fakeServices{
			1: {ID: 1, Name: "Corte", Price: 25, DurationMinutes: 30, IsActive: true},
			2: {ID: 2, Name: "Corte + Barba", Price: 45, DurationMinutes: 60, IsActive: true},
		},
		openHours{},
		availability.NewLocalSource(store, loc),
		fixedClock{},
		availability.Policy{StepMinutes: 30, MinAdvance: 2 * time.Hour, MaxAdvanceDays: 30, Location: loc},
		logger.NewNop(),
	)
	var observer *metrics.Metrics
	return NewUseCase(store, engine, calendar, validator.New(), passPhones{}, observer, directTx{}, logger.NewNop())
}

func TestExecute_EditCustomerFields(t *testing.T) {
	store := seed()
	calendar := &fakeCalendar{}
	uc := newUseCase(store, calendar)

	resp, err := uc.Execute(context.Background(), &Request{ID: 1, CustomerName: ptr.Ptr(" Ana Paula "), Notes: ptr.Ptr("sem máquina")})
	require.NoError(t, err)

	assert.Equal(t, "Ana Paula", resp.Appointment.CustomerName)
	assert.Equal(t, "sem máquina", *resp.Appointment.Notes)
	assert.Empty(t, store.locked)
	assert.Equal(t, domain.MirrorMirrored, resp.Mirror.Status)
	assert.Equal(t, []string{"evt-1"}, calendar.updated)
}

func TestExecute_RescheduleOverOwnSlot(t *testing.T) {
	store := seed()
	uc := newUseCase(store, nil)

	// 10:00 -> 09:45 пересекается только с самой записью
	resp, err := uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr("09:45")})
	require.NoError(t, err)

	assert.Equal(t, "09:45", resp.Appointment.StartTime.String())
	assert.Equal(t, []string{"2025-03-10"}, store.locked)
	assert.Equal(t, domain.MirrorSkipped, resp.Mirror.Status)
}

func TestExecute_RescheduleConflict(t *testing.T) {
	store := seed()
	uc := newUseCase(store, nil)

	_, err := uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr("10:45")})
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
	assert.Equal(t, 0, store.updates)
}

func TestExecute_ChangeServiceResnapshotsDuration(t *testing.T) {
	store := seed()
	uc := newUseCase(store, nil)

	// 60 минут с 10:00 упираются в запись 11:00 только границей
	resp, err := uc.Execute(context.Background(), &Request{ID: 1, ServiceID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Appointment.DurationMinutes)
	assert.Equal(t, "Corte + Barba", resp.Appointment.ServiceName)
	assert.Equal(t, 45.0, resp.Appointment.ServicePrice)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr("10:30")})
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	store := seed()
	uc := newUseCase(store, &fakeCalendar{})

	_, err := uc.Execute(context.Background(), &Request{ID: 3, Date: ptr.Ptr("2025-03-11")})
	assert.ErrorIs(t, err, ErrAppointmentCancelled)

	resp, err := uc.Execute(context.Background(), &Request{ID: 3, Notes: ptr.Ptr("ligar antes")})
	require.NoError(t, err)
	assert.Equal(t, "ligar antes", *resp.Appointment.Notes)
	assert.Equal(t, domain.MirrorSkipped, resp.Mirror.Status)
}

func TestExecute_Errors(t *testing.T) {
	store := seed()
	uc := newUseCase(store, nil)

	_, err := uc.Execute(context.Background(), &Request{ID: 99, Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, CustomerPhone: ptr.Ptr("bad")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, CustomerEmail: ptr.Ptr("nope")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, Date: ptr.Ptr("2025-03-01")})
	assert.ErrorIs(t, err, availability.ErrPastDate)

	_, err = uc.Execute(context.Background(), &Request{ID: 1, Time: ptr.Ptr("17:45")})
	assert.ErrorIs(t, err, availability.ErrOutsideBusinessHours)
}

func TestExecute_MirrorFailure(t *testing.T) {
	store := seed()
	uc := newUseCase(store, &fakeCalendar{err: errors.New("down")})

	resp, err := uc.Execute(context.Background(), &Request{ID: 1, Notes: ptr.Ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, domain.MirrorFailed, resp.Mirror.Status)
	assert.Equal(t, domain.ReasonMirrorFailed, resp.Mirror.Code)
}
