package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured record per request.
func AccessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Limits on the per-client limiter table. Entries idle longer than
// rateLimitIdleTTL are dropped, and the least recently seen client is
// evicted once the table is full.
const (
	DefaultRateLimitClients = 10000
	rateLimitIdleTTL        = 10 * time.Minute
)

// RateLimit applies a token bucket per client IP, tracking at most
// maxClients clients. A non-positive rps disables limiting.
func RateLimit(rps float64, burst, maxClients int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst = max(burst, 1)
	if maxClients < 1 {
		maxClients = DefaultRateLimitClients
	}

	var mu sync.Mutex
	limiters := expirable.NewLRU[string, *rate.Limiter](maxClients, nil, rateLimitIdleTTL)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters.Get(ip)
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
		}
		// re-adding refreshes the idle deadline
		limiters.Add(ip, l)
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
