package blockeddate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TrainingScheduler/pkg/types"
)

const table = "blocked_dates"

// Repository репозиторий заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заблокированных дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все заблокированные даты по возрастанию
func (r *Repository) List(ctx context.Context) ([]*domain.BlockedDate, error) {
	return r.list(ctx, psqlbuilder.Select(columns()...).From(table).OrderBy("date ASC"))
}

// ListBetween возвращает заблокированные даты в диапазоне [from, to]
func (r *Repository) ListBetween(ctx context.Context, from, to types.Date) ([]*domain.BlockedDate, error) {
	return r.list(ctx, psqlbuilder.Select(columns()...).
		From(table).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC"))
}

// Get возвращает запись о блокировке даты
func (r *Repository) Get(ctx context.Context, date types.Date) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns()...).
		From(table).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var bd domain.BlockedDate
	err = executor.QueryRowContext(ctx, query, args...).Scan(&bd.Date, &bd.Reason, &bd.CreatedAt, &bd.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockedDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan row: %v", ErrScanRow, err)
	}

	return &bd, nil
}

// Exists проверяет, заблокирована ли дата
func (r *Repository) Exists(ctx context.Context, date types.Date) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := existsQuery(date).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - execute select: %v", ErrExecQuery, err)
	}

	return exists, nil
}

// Upsert блокирует дату. Повторная блокировка обновляет причину, не создавая дубликат.
// Второе значение равно true, если запись была создана
func (r *Repository) Upsert(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery(bd).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var inserted bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&bd.CreatedAt, &bd.UpdatedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return bd, inserted, nil
}

// Delete снимает блокировку. Если дата не была заблокирована, возвращает ErrBlockedDateNotFound
func (r *Repository) Delete(ctx context.Context, date types.Date) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var bd domain.BlockedDate
		if err := rows.Scan(&bd.Date, &bd.Reason, &bd.CreatedAt, &bd.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func existsQuery(date types.Date) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{"date": date}).
		Suffix(")")
}

// upsertQuery возвращает created_at, updated_at и признак вставки (xmax = 0 только у новой строки)
func upsertQuery(bd *domain.BlockedDate) squirrel.InsertBuilder {
	return psqlbuilder.Insert(table).
		Columns("date", "reason").
		Values(bd.Date, bd.Reason).
		Suffix("ON CONFLICT (date) DO UPDATE SET reason = EXCLUDED.reason, updated_at = NOW() " +
			"RETURNING created_at, updated_at, (xmax = 0) AS inserted")
}

func columns() []string {
	return []string{"date", "reason", "created_at", "updated_at"}
}
