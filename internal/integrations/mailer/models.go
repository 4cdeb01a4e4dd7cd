package mailer

import (
	"context"
	"time"
)

// Settings параметры SMTP и приглашения
type Settings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool // implicit TLS (обычно порт 465)
	Timeout  time.Duration

	Subject      string
	Duration     time.Duration
	MeetingLinks []string
	Organizer    string
	Location     *time.Location
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sendFunc доставляет готовое письмо одному получателю
type sendFunc func(ctx context.Context, from, to string, msg []byte) error

// invite данные одного приглашения
type invite struct {
	Company     string
	Type        string
	When        string
	MeetingLink string
	Start       time.Time
	End         time.Time
}
