package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// LocalSource занятые интервалы из подтвержденных записей хранилища
type LocalSource struct {
	repo AppointmentLister
	loc  *time.Location
}

// NewLocalSource создает локальный источник
func NewLocalSource(repo AppointmentLister, loc *time.Location) *LocalSource {
	return &LocalSource{repo: repo, loc: loc}
}

// BusyIntervals реализует BusySource
func (s *LocalSource) BusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error) {
	appointments, err := s.repo.ListConfirmedByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: LocalSource - list confirmed: %w", ErrInternal, err)
	}

	intervals := make([]domain.BusyInterval, 0, len(appointments))
	for _, a := range appointments {
		interval, err := a.Interval(s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: LocalSource - appointment id=%d: %v", ErrInternal, a.ID, err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

// CalendarSource занятые интервалы из внешнего календаря.
// Любая ошибка календаря означает отказ, а не свободный день
type CalendarSource struct {
	client  CalendarClient
	timeout time.Duration
}

// NewCalendarSource создает календарный источник
func NewCalendarSource(client CalendarClient, timeout time.Duration) *CalendarSource {
	return &CalendarSource{client: client, timeout: timeout}
}

// BusyIntervals реализует BusySource
func (s *CalendarSource) BusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	intervals, err := s.client.GetBusyIntervals(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
	return intervals, nil
}

// CombinedSource объединение нескольких источников. Ошибка любого источника - ошибка результата
type CombinedSource struct {
	sources []BusySource
}

// NewCombinedSource создает объединенный источник
func NewCombinedSource(sources ...BusySource) *CombinedSource {
	return &CombinedSource{sources: sources}
}

// BusyIntervals реализует BusySource
func (s *CombinedSource) BusyIntervals(ctx context.Context, date time.Time) ([]domain.BusyInterval, error) {
	results := make([][]domain.BusyInterval, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range s.sources {
		g.Go(func() error {
			intervals, err := source.BusyIntervals(gctx, date)
			if err != nil {
				return err
			}
			results[i] = intervals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]domain.BusyInterval, 0)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
