package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// MetricsMiddleware считает запросы и их длительность по шаблону маршрута
func MetricsMiddleware(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			m.ObserveHTTPRequest(r.Method, routeName(r), strconv.Itoa(rec.status), time.Since(start))
		})
	}
}
