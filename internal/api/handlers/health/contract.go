package health

import "context"

// Pinger зависимость, доступность которой проверяется в /readyz
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc адаптер функции к Pinger
type PingFunc func(ctx context.Context) error

// PingContext вызывает f
func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
