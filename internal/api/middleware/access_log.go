package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			id, _ := GetRequestID(r.Context())
			duration := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, duration, id)
			case rec.status >= http.StatusBadRequest:
				log.Warn("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, duration, id)
			default:
				log.Info("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, duration, id)
			}
		})
	}
}
