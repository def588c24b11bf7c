package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB, *sqlx.DB and the barcode cache.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health returns a JSON health check response.
// cache may be nil when Redis is not configured; it is then reported as "disabled".
// Never exposes credentials or internals.
func Health(db Pinger, cache Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if cache != nil {
			redisStatus = "connected"
			if cache.PingContext(ctx) != nil {
				redisStatus = "error"
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		})
	}
}
