package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor общий интерфейс *sql.DB, *sql.Tx и их обёрток
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return db
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok && tx != nil
}
