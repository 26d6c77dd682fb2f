package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const table = "contacts"

var columns = []string{
	"id",
	"name",
	"email",
	"phone",
	"contact_preference",
	"message",
	"preferred_time",
	"opt_in",
	"created_at",
	"updated_at",
}

// Repository репозиторий обращений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория обращений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет обращение
func (r *Repository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "email", "phone", "contact_preference", "message", "preferred_time", "opt_in").
		Values(c.Name, c.Email, c.Phone, c.Preference, c.Message, c.PreferredTime, c.OptIn).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, pgerrors.Classify(err))
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

// GetByID получает обращение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanContact(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan contact: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return c, nil
}

// List обращения, новые сначала
func (r *Repository) List(ctx context.Context) ([]*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, pgerrors.Classify(err))
	}
	defer rows.Close()

	contacts := make([]*domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return contacts, nil
}

// Update перезаписывает обращение
func (r *Repository) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("contact_preference", c.Preference).
		Set("message", c.Message).
		Set("preferred_time", c.PreferredTime).
		Set("opt_in", c.OptIn).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, pgerrors.Classify(err))
	}

	c.UpdatedAt = updatedAt.Time
	return c, nil
}

// Delete удаляет обращение
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, pgerrors.Classify(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// Stats агрегаты по обращениям
func (r *Repository) Stats(ctx context.Context) (*domain.ContactStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"contact_preference",
		"COALESCE(preferred_time, '')",
		"opt_in",
		"COUNT(*)",
	).
		From(table).
		GroupBy("contact_preference", "preferred_time", "opt_in").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute query: %w", ErrExecQuery, pgerrors.Classify(err))
	}
	defer rows.Close()

	stats := &domain.ContactStats{
		ByPreference:    make(map[domain.ContactPreference]int),
		ByPreferredTime: make(map[domain.PreferredTime]int),
	}
	for rows.Next() {
		var (
			pref      string
			preferred string
			optIn     bool
			count     int
		)
		if err := rows.Scan(&pref, &preferred, &optIn, &count); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
		}
		stats.Total += count
		if optIn {
			stats.OptedIn += count
		}
		stats.ByPreference[domain.ContactPreference(pref)] += count
		if preferred != "" {
			stats.ByPreferredTime[domain.PreferredTime(preferred)] += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		c                    domain.Contact
		preferredTime        sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Preference,
		&c.Message,
		&preferredTime,
		&c.OptIn,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if preferredTime.Valid {
		pt := domain.PreferredTime(preferredTime.String)
		c.PreferredTime = &pt
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
