package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TrainingScheduler/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// Counter счетчик запросов в фиксированном окне
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter фиксированное окно в Redis, общее для всех экземпляров сервиса
type RedisCounter struct {
	rdb redis.Scripter
}

// NewRedisCounter создает счетчик поверх клиента Redis
func NewRedisCounter(rdb redis.Scripter) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr увеличивает счетчик key и возвращает его значение в текущем окне
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = time.Minute.Milliseconds()
	}

	res, err := fixedWindowScript.Run(ctx, c.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimitSettings параметры ограничения для группы маршрутов
type RateLimitSettings struct {
	Scope  string // "submit" | "admin"
	Prefix string
	Limit  int
	Window time.Duration
	// TrustedProxies адреса прокси, которым разрешено передавать X-Forwarded-For
	TrustedProxies []*net.IPNet
}

// ParseTrustedProxies разбирает список CIDR или отдельных IP адресов
func ParseTrustedProxies(values []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !strings.Contains(v, "/") {
			ip := net.ParseIP(v)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy address %q", v)
			}
			bits := 128
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipNet, err := net.ParseCIDR(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy network %q: %w", v, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}

// RateLimit ограничивает частоту запросов с одного адреса.
// При недоступности счетчика запрос пропускается
func RateLimit(counter Counter, settings RateLimitSettings, m RateLimitMetrics, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r, settings.TrustedProxies)
			key := settings.Prefix + ":" + settings.Scope + ":" + client

			count, err := counter.Incr(r.Context(), key, settings.Window)
			if err != nil {
				log.Warn("RateLimit: counter unavailable for scope=%s, request allowed: %v", settings.Scope, err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(settings.Limit) {
				m.IncRateLimited(settings.Scope)
				log.Warn("RateLimit: scope=%s, client=%s exceeded %d requests per %s", settings.Scope, client, settings.Limit, settings.Window)
				w.Header().Set("Retry-After", strconv.Itoa(int(settings.Window.Seconds())))
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey адрес клиента. X-Forwarded-For учитывается только если соединение пришло от
// доверенного прокси; берется ближайший к серверу адрес вне списка прокси
func clientKey(r *http.Request, trusted []*net.IPNet) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remote = host
	}

	if !isTrusted(net.ParseIP(remote), trusted) {
		return remote
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return remote
	}

	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		ip := net.ParseIP(hop)
		if ip == nil {
			break
		}
		if !isTrusted(ip, trusted) {
			return ip.String()
		}
	}
	return remote
}

func isTrusted(ip net.IP, trusted []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
