package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	msgRateLimited        = "слишком много запросов, повторите позже"
	msgLimiterUnavailable = "ограничитель запросов недоступен"

	redisKeyPrefix = "barber:rl"
)

// ErrLimiterUnavailable хранилище счетчиков недоступно
var ErrLimiterUnavailable = errors.New("rate limiter unavailable")

// Limiter решает, пропустить ли очередной запрос клиента key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter token bucket на клиента внутри одного процесса
type MemoryLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &MemoryLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.get(key).Allow(), nil
}

func (l *MemoryLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return actual.(*rate.Limiter)
}

// RedisLimiter фиксированное окно в Redis, общее для всех инстансов
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int64
	window time.Duration
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{redisKeyPrefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrLimiterUnavailable, err)
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, fmt.Errorf("%w: parse counter: %v", ErrLimiterUnavailable, err)
		}
	default:
		return false, fmt.Errorf("%w: unexpected script result %T", ErrLimiterUnavailable, res)
	}
	return count <= l.limit, nil
}

// RateLimit ограничивает частоту запросов по IP клиента.
// failOpen пропускает запросы, когда хранилище счетчиков недоступно
func RateLimit(l Limiter, failOpen bool, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Warn("RateLimit: limiter error: %v", err)
				if !failOpen {
					handlers.RespondProblem(w, handlers.Problem{
						Status:    http.StatusServiceUnavailable,
						Code:      domain.ReasonRateLimited,
						Message:   msgLimiterUnavailable,
						Retryable: true,
					})
					return
				}
				allowed = true
			}

			if !allowed {
				handlers.RespondProblem(w, handlers.Problem{
					Status:    http.StatusTooManyRequests,
					Code:      domain.ReasonRateLimited,
					Message:   msgRateLimited,
					Retryable: true,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
