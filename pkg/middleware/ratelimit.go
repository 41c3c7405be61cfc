package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"venue-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// NewRateLimitStore keeps counters in Redis when a client is given so limits hold
// across replicas, and in process memory otherwise.
func NewRateLimitStore(client *redis.Client, prefix string) (limiter.Store, error) {
	options := limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: 3,
	}
	if client == nil {
		return memory.NewStoreWithOptions(options), nil
	}

	store, err := redisstore.NewStoreWithOptions(client, options)
	if err != nil {
		return nil, fmt.Errorf("create redis rate limit store: %w", err)
	}
	return store, nil
}

// RateLimit limits requests per caller using a rate like "10-M" (10 per minute).
// Authenticated callers are keyed by user id, everyone else by client IP.
func RateLimit(store limiter.Store, rate, name string, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse %s rate %q: %w", name, rate, err)
	}

	instance := limiter.New(store, parsed)
	ipKey := stdlib.DefaultKeyGetter(instance)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(func(r *http.Request) string {
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				return name + ":user:" + userID
			}
			return name + ":ip:" + ipKey(r)
		}),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("Rate limit reached",
				zap.String("limiter", name),
				zap.String("path", r.URL.Path),
				zap.String("ip", r.RemoteAddr),
			)
			utils.ResponseTooManyRequests(w, "Too many requests, retry in a moment")
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("Rate limiter failure", zap.Error(err), zap.String("limiter", name))
			utils.ResponseInternalError(w, "Internal server error")
		}),
	)

	logger.Info("Rate limit configured",
		zap.String("limiter", name),
		zap.String("rate", strconv.FormatInt(parsed.Limit, 10)+" per "+parsed.Period.String()),
	)
	return mw.Handler, nil
}
