package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

const table = "booking_records"

// MemoryPath путь для хранилища в памяти (тесты)
const MemoryPath = ":memory:"

// Repository локальная копия записей {id, scheduled_at} в файле SQLite.
// Время хранится текстом как есть, старые записи могут быть в формате dd/mm/yyyy hh:mm
type Repository struct {
	db *sql.DB
}

// Open открывает (и при необходимости создает) файл хранилища
func Open(path string) (*Repository, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create dir: %v", ErrOpen, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	// SQLite поддерживает только одно write-подключение; для :memory: это еще и одна общая база
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &Repository{db: db}
	if err := r.migrate(path); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

func (r *Repository) migrate(path string) error {
	if path != MemoryPath {
		if _, err := r.db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
			return fmt.Errorf("%w: set WAL mode: %v", ErrMigrate, err)
		}
	}
	if _, err := r.db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		return fmt.Errorf("%w: set busy timeout: %v", ErrMigrate, err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS booking_records (
			id TEXT PRIMARY KEY,
			scheduled_at TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
	}

	return nil
}

// Append добавляет запись. Повторная запись с тем же ID заменяет время
func (r *Repository) Append(ctx context.Context, record domain.BookingRecord) error {
	query, args, err := squirrel.Insert(table).
		Columns("id", "scheduled_at").
		Values(record.ID, record.ScheduledAt).
		Suffix("ON CONFLICT(id) DO UPDATE SET scheduled_at = excluded.scheduled_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListAll возвращает все записи в порядке добавления
func (r *Repository) ListAll(ctx context.Context) ([]domain.BookingRecord, error) {
	query, args, err := squirrel.Select("id", "scheduled_at").
		From(table).
		OrderBy("rowid ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.BookingRecord, 0)
	for rows.Next() {
		var rec domain.BookingRecord
		if err := rows.Scan(&rec.ID, &rec.ScheduledAt); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// Ping проверяет доступность хранилища
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

// Close закрывает хранилище
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
