package businesshours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	table = "business_hours"

	checkViolation = "23514"
)

var columns = []string{"day_of_week", "open_time", "close_time", "is_active", "updated_at"}

// Repository репозиторий часов работы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория часов работы
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDay правило для дня недели
func (r *Repository) GetByDay(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan rule: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return rule, nil
}

// List все правила в порядке дней недели (с воскресенья)
func (r *Repository) List(ctx context.Context) ([]*domain.BusinessHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, pgerrors.Classify(err))
	}
	defer rows.Close()

	rules := make([]*domain.BusinessHoursRule, 0, 7)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return rules, nil
}

// Upsert создает или перезаписывает правило дня недели
func (r *Repository) Upsert(ctx context.Context, rule *domain.BusinessHoursRule) (*domain.BusinessHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("day_of_week", "open_time", "close_time", "is_active").
		Values(int(rule.DayOfWeek), rule.OpenTime, rule.CloseTime, rule.IsActive).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == checkViolation {
			return nil, ErrInvalidRange
		}
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, pgerrors.Classify(err))
	}

	rule.UpdatedAt = updatedAt.Time
	return rule, nil
}

// Toggle инвертирует флаг активности и возвращает обновленное правило
func (r *Repository) Toggle(ctx context.Context, day time.Weekday) (*domain.BusinessHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		Suffix("RETURNING day_of_week, open_time, close_time, is_active, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Toggle - build update query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == checkViolation {
			return nil, ErrInvalidRange
		}
		return nil, fmt.Errorf("%w: Toggle - execute update: %w", ErrExecQuery, pgerrors.Classify(err))
	}
	return rule, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.BusinessHoursRule, error) {
	var (
		rule      domain.BusinessHoursRule
		day       int
		updatedAt sql.NullTime
	)
	if err := row.Scan(&day, &rule.OpenTime, &rule.CloseTime, &rule.IsActive, &updatedAt); err != nil {
		return nil, err
	}
	rule.DayOfWeek = time.Weekday(day)
	rule.UpdatedAt = updatedAt.Time
	return &rule, nil
}
