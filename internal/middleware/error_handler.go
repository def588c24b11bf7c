package middleware

import (
	"net/http"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// The status comes from apierror.FromError: 400/404/422 bodies carry their
// detail, everything else is logged and answered with an opaque 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		status, body := apierror.FromError(last.Err)

		ev := log.Debug()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		requestEvent(ev, c).Int("status", status).Err(last.Err).Msg("request con error")

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a panic into the same opaque 500 ErrorHandler sends.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestEvent(log.Error(), c).Interface("panic", r).Msg("panic recuperado")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

func requestEvent(ev *zerolog.Event, c *gin.Context) *zerolog.Event {
	return ev.
		Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("route", c.FullPath())
}
