package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"service_id",
	"service_name",
	"service_price",
	"duration_minutes",
	"appointment_date",
	"start_time",
	"status",
	"notes",
	"external_event_id",
	"external_event_link",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertConfirmed сохраняет подтвержденную запись.
// Пересечение с другой подтвержденной записью отсекается EXCLUDE-ограничением и возвращается как ErrSlotConflict
func (r *Repository) InsertConfirmed(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_name",
			"customer_phone",
			"customer_email",
			"service_id",
			"service_name",
			"service_price",
			"duration_minutes",
			"appointment_date",
			"start_time",
			"status",
			"notes",
		).
		Values(
			a.CustomerName,
			a.CustomerPhone,
			a.CustomerEmail,
			a.ServiceID,
			a.ServiceName,
			a.ServicePrice,
			a.DurationMinutes,
			a.Date.Format(domain.DateFormat),
			a.StartTime,
			domain.StatusConfirmed,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfirmed - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("InsertConfirmed", err)
	}

	a.Status = domain.StatusConfirmed
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, pgerrors.Classify(err))
	}

	return a, nil
}

// ListConfirmedByDate подтвержденные записи на дату по возрастанию времени
func (r *Repository) ListConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	status := domain.StatusConfirmed
	return r.list(ctx, "ListConfirmedByDate", domain.AppointmentsFilter{From: &date, To: &date, Status: &status})
}

// List записи по фильтру. Для одной даты сортировка по времени, иначе по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.list(ctx, "List", filter)
}

func (r *Repository) list(ctx context.Context, op string, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"appointment_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"appointment_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	builder = builder.OrderBy("appointment_date ASC", "start_time ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, pgerrors.Classify(err))
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update сохраняет изменения записи (клиент, услуга, дата, время, заметки)
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("customer_name", a.CustomerName).
		Set("customer_phone", a.CustomerPhone).
		Set("customer_email", a.CustomerEmail).
		Set("service_id", a.ServiceID).
		Set("service_name", a.ServiceName).
		Set("service_price", a.ServicePrice).
		Set("duration_minutes", a.DurationMinutes).
		Set("appointment_date", a.Date.Format(domain.DateFormat)).
		Set("start_time", a.StartTime).
		Set("notes", a.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// SetStatus меняет статус записи. При отмене проставляется cancelled_at
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		builder = builder.Set("cancelled_at", squirrel.Expr("COALESCE(cancelled_at, NOW())"))
	} else {
		builder = builder.Set("cancelled_at", nil)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("SetStatus", err)
	}

	return requireAffected("SetStatus", result)
}

// SetExternalEvent сохраняет ссылку на событие календаря. nil очищает ссылку
func (r *Repository) SetExternalEvent(ctx context.Context, id int64, ref *domain.ExternalEventRef) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var eventID, eventLink *string
	if ref != nil {
		eventID, eventLink = &ref.ID, &ref.Link
	}

	query, args, err := psqlbuilder.Update(table).
		Set("external_event_id", eventID).
		Set("external_event_link", eventLink).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetExternalEvent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetExternalEvent - execute update: %w", ErrExecQuery, pgerrors.Classify(err))
	}

	return requireAffected("SetExternalEvent", result)
}

// LockDate берет транзакционную advisory-блокировку на дату.
// Все записи на одну дату сериализуются до конца транзакции
func (r *Repository) LockDate(ctx context.Context, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockDate - must be called inside a transaction", ErrTransaction)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", DateLockKey(date)); err != nil {
		return fmt.Errorf("%w: LockDate - acquire lock: %w", ErrTransaction, pgerrors.Classify(err))
	}
	return nil
}

// CountByService количество записей (любого статуса), ссылающихся на услугу
func (r *Repository) CountByService(ctx context.Context, serviceID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByService - scan count: %w", ErrScanRow, pgerrors.Classify(err))
	}
	return count, nil
}

// DateLockKey ключ advisory-блокировки для календарной даты
func DateLockKey(date time.Time) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("appointments:" + date.Format(domain.DateFormat)))
	return int64(h.Sum64())
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s", ErrSlotConflict, op)
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", ErrServiceReference, op)
	default:
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, pgerrors.Classify(err))
	}
}

func requireAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		date                 time.Time
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.CustomerName,
		&a.CustomerPhone,
		&a.CustomerEmail,
		&a.ServiceID,
		&a.ServiceName,
		&a.ServicePrice,
		&a.DurationMinutes,
		&date,
		&a.StartTime,
		&a.Status,
		&a.Notes,
		&a.ExternalEventID,
		&a.ExternalEventLink,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит как полночь UTC, оставляем только календарную дату
	a.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		a.CancelledAt = &t
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, pgerrors.Classify(err))
	}

	return appointments, nil
}
