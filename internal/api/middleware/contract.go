package middleware

import "time"

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route, status string, d time.Duration)
}

// RateLimitMetrics метрики ограничения частоты
type RateLimitMetrics interface {
	IncRateLimited(scope string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
