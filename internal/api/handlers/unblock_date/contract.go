package unblock_date

import "context"

type BlockedDatesService interface {
	Unblock(ctx context.Context, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
