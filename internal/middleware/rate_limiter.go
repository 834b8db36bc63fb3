package middleware

import (
	"log/slog"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"JobPortal-backend/internal/utilities"
)

func keyFunc(c *gin.Context) string {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		return "ip:" + c.ClientIP()
	}
	return "user:" + user.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", info.ResetTime.UTC().Format(http.TimeFormat))
	utilities.Fail(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
}

// RateLimiterMiddleware limits each user (or client IP before sign in) to reqPerSec requests.
// A nil rdb keeps the counters in process memory.
func RateLimiterMiddleware(reqPerSec uint, rdb *redis.Client) gin.HandlerFunc {
	if reqPerSec == 0 {
		reqPerSec = 5
	}

	memory := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	var store ratelimit.Store = memory
	if rdb != nil {
		store = &redisStore{
			limiter:  redis_rate.NewLimiter(rdb),
			limit:    redis_rate.PerSecond(int(reqPerSec)),
			fallback: memory,
		}
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}

// redisStore shares rate limit counters between instances through redis.
// When redis is unreachable it falls back to the in-memory store.
type redisStore struct {
	limiter  *redis_rate.Limiter
	limit    redis_rate.Limit
	fallback ratelimit.Store
}

func (s *redisStore) Limit(key string, c *gin.Context) ratelimit.Info {
	res, err := s.limiter.Allow(c.Request.Context(), "ratelimit:"+key, s.limit)
	if err != nil {
		slog.Warn("rate limiter error, using memory store", "error", err, "key", key)
		return s.fallback.Limit(key, c)
	}

	return ratelimit.Info{
		Limit:         uint(s.limit.Rate),
		RateLimited:   res.Allowed == 0,
		ResetTime:     time.Now().Add(res.ResetAfter),
		RemainingHits: uint(max(res.Remaining, 0)),
	}
}
