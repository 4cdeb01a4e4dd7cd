package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики пула соединений
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, замеряющая длительность запросов.
// С nil-метриками работает как обычный *sql.DB.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectStats(DefaultStatsInterval, stopCh)
	}
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

// PingContext проверяет соединение
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(operation(query), time.Since(start), err)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(operation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(operation(query), time.Since(start), row.Err())
	return row
}

// BeginTx открывает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats := d.db.Stats()
		d.metrics.SetDBConnections(stats.OpenConnections, stats.InUse, stats.Idle)

		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

// Tx обёртка над *sql.Tx
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос без результата в транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(operation(query), time.Since(start), err)
	return res, err
}

// QueryContext выполняет запрос в транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(operation(query), time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос одной строки в транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(operation(query), time.Since(start), row.Err())
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// operation первое ключевое слово запроса (select, insert, ...)
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
