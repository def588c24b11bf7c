package middleware

import (
	"net/http"
	"strconv"
	"time"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter allows limit requests per period and client IP, counted in
// store. A nil store counts in process memory. When the store fails the
// request goes through and the failure is logged.
func RateLimiter(store limiter.Store, limit int, period time.Duration) gin.HandlerFunc {
	if store == nil {
		store = memory.NewStore()
	}
	l := limiter.New(store, limiter.Rate{Period: period, Limit: int64(limit)})

	return mgin.NewMiddleware(l,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			retry := "60"
			if reset, err := strconv.ParseInt(c.Writer.Header().Get("X-RateLimit-Reset"), 10, 64); err == nil {
				if s := time.Until(time.Unix(reset, 0)).Seconds(); s > 0 {
					retry = strconv.Itoa(int(s) + 1)
				}
			}
			c.Header("Retry-After", retry)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			requestEvent(log.Warn(), c).Err(err).Msg("rate limiter no disponible")
			c.Next()
		}),
	)
}
