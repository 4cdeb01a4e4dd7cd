package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainingScheduler/pkg/dbmetrics"
)

var (
	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст.
// Репозитории получают транзакцию через dbmetrics.GetExecutor.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}
	return nil
}
