package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/businesshours"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/services"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Policy параметры расчета доступности
type Policy struct {
	StepMinutes    int
	MinAdvance     time.Duration
	MaxAdvanceDays int
	Location       *time.Location
}

// Engine расчет свободных слотов и проверка конфликтов.
// Ничего не хранит между вызовами, безопасен для конкурентного использования
type Engine struct {
	services ServiceRepository
	hours    BusinessHoursRepository
	busy     BusySource
	clock    TimeProvider
	policy   Policy
	log      Logger
}

// NewEngine создает движок доступности
func NewEngine(
	services ServiceRepository,
	hours BusinessHoursRepository,
	busy BusySource,
	clock TimeProvider,
	policy Policy,
	log Logger,
) *Engine {
	if policy.StepMinutes <= 0 {
		policy.StepMinutes = domain.DefaultSlotStepMinutes
	}
	if policy.MaxAdvanceDays <= 0 {
		policy.MaxAdvanceDays = domain.DefaultMaxAdvanceDays
	}
	if policy.Location == nil {
		policy.Location = time.UTC
	}

	return &Engine{
		services: services,
		hours:    hours,
		busy:     busy,
		clock:    clock,
		policy:   policy,
		log:      log,
	}
}

// Location часовой пояс барбершопа
func (e *Engine) Location() *time.Location {
	return e.policy.Location
}

// Now текущее время в часовом поясе барбершопа
func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.policy.Location)
}

// ComputeFreeSlots свободные начала записи на услугу serviceID в день date.
// Закрытый день дает пустой список без ошибки
func (e *Engine) ComputeFreeSlots(ctx context.Context, date time.Time, serviceID int64) ([]types.TimeString, error) {
	loc := e.policy.Location
	now := e.Now()
	day := dateOnly(date, loc)

	if err := e.checkDateRange(day, now); err != nil {
		return nil, err
	}

	// Шаг 1: Услуга и правило дня недели. Нет активного правила - день закрыт
	service, err := e.resolveService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	rule, err := e.resolveRule(ctx, day.Weekday())
	if err != nil {
		return nil, err
	}
	if rule == nil || !rule.IsActive {
		e.log.Info("ComputeFreeSlots: closed on %s", day.Format(domain.DateFormat))
		return []types.TimeString{}, nil
	}

	open, err := rule.OpenTime.OnDate(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeFreeSlots - open time: %v", ErrInternal, err)
	}
	closeAt, err := rule.CloseTime.OnDate(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeFreeSlots - close time: %v", ErrInternal, err)
	}

	// Шаг 2: Занятые интервалы дня из источника (БД, календарь или оба)
	busy, err := e.busy.BusyIntervals(ctx, day)
	if err != nil {
		e.log.Error("ComputeFreeSlots: busy intervals for %s: %v", day.Format(domain.DateFormat), err)
		return nil, err
	}

	// Шаг 3: Сегодня слоты раньше now + minAdvance не предлагаются
	var notBefore time.Time
	if isSameDay(day, now) {
		notBefore = now.Add(e.policy.MinAdvance)
	}

	// Шаг 4: Сетка от открытия, пока слот помещается до закрытия, без пересечений с занятыми
	starts := FreeSlots(
		open,
		closeAt,
		time.Duration(service.DurationMinutes)*time.Minute,
		time.Duration(e.policy.StepMinutes)*time.Minute,
		notBefore,
		busy,
	)

	slots := make([]types.TimeString, 0, len(starts))
	for _, t := range starts {
		slots = append(slots, types.NewTimeString(t))
	}

	e.log.Info("ComputeFreeSlots: %d free slots on %s for service id=%d", len(slots), day.Format(domain.DateFormat), serviceID)
	return slots, nil
}

// IsSlotAvailable свободен ли интервал [start, start+duration) услуги
func (e *Engine) IsSlotAvailable(ctx context.Context, date time.Time, start types.TimeString, serviceID int64) (bool, error) {
	return e.IsSlotAvailableExcluding(ctx, date, start, serviceID, Exclude{})
}

// IsSlotAvailableExcluding то же, что IsSlotAvailable, но без учета exclude
func (e *Engine) IsSlotAvailableExcluding(ctx context.Context, date time.Time, start types.TimeString, serviceID int64, exclude Exclude) (bool, error) {
	service, err := e.resolveService(ctx, serviceID)
	if err != nil {
		return false, err
	}

	day := dateOnly(date, e.policy.Location)
	startAt, err := start.OnDate(day, e.policy.Location)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return e.IsIntervalFree(ctx, day, startAt, startAt.Add(time.Duration(service.DurationMinutes)*time.Minute), exclude)
}

// IsIntervalFree нет ли занятых интервалов, пересекающих [start, end) в день date
func (e *Engine) IsIntervalFree(ctx context.Context, date time.Time, start, end time.Time, exclude Exclude) (bool, error) {
	busy, err := e.busy.BusyIntervals(ctx, dateOnly(date, e.policy.Location))
	if err != nil {
		return false, err
	}
	return !overlapsAny(start, end, busy, exclude), nil
}

func (e *Engine) checkDateRange(day, now time.Time) error {
	today := dateOnly(now, e.policy.Location)
	if day.Before(today) {
		return ErrPastDate
	}
	if day.After(today.AddDate(0, 0, e.policy.MaxAdvanceDays)) {
		return ErrTooFarInAdvance
	}
	return nil
}

func (e *Engine) resolveService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := e.services.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		e.log.Error("resolveService: service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: resolve service: %w", ErrInternal, err)
	}
	if !service.IsBookable() {
		return nil, ErrServiceNotFound
	}
	return service, nil
}

// resolveRule правило дня недели. Отсутствие правила не ошибка
func (e *Engine) resolveRule(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	rule, err := e.hours.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, businesshours.ErrRuleNotFound) {
			return nil, nil
		}
		e.log.Error("resolveRule: day=%s: %v", domain.WeekdayName(day), err)
		return nil, fmt.Errorf("%w: resolve business hours: %w", ErrInternal, err)
	}
	return rule, nil
}
