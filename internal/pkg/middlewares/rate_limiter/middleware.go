package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"marketplace/internal/pkg/middlewares/auth"
	"marketplace/pkg/logger"
)

const (
	keyKindActor = "actor"
	keyKindAddr  = "addr"
)

// Middleware ограничивает частоту запросов отдельно для каждого актора.
// Без актора в контексте ключом служит адрес клиента.
func Middleware(log handlerLogger, rateLimiterQPS int, rlimiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind, key := limiterKey(r)
			if !rlimiter.Allow(key) {
				handlerPath := r.URL.Path
				route := mux.CurrentRoute(r)
				if route != nil {
					if template, err := route.GetPathTemplate(); err == nil {
						handlerPath = template
					}
				}

				log.With(
					logger.NewField("method", r.Method),
					logger.NewField("path", r.URL.Path),
					logger.NewField("route", handlerPath),
					logger.NewField("key", key),
				).Warn("rate limit exceeded")

				RateLimitExceededTotal.WithLabelValues(r.Method, handlerPath, kind).Inc()

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)

				_, err := w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`))
				if err != nil {
					log.With(
						logger.NewField("error", err),
						logger.NewField("path", r.URL.Path),
					).Error("failed to write rate limit response")
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limiterKey возвращает вид ключа (actor или addr) и сам ключ.
func limiterKey(r *http.Request) (string, string) {
	if actor, ok := auth.ActorFromContext(r.Context()); ok {
		return keyKindActor, keyKindActor + ":" + actor.ID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return keyKindAddr, keyKindAddr + ":" + host
}
