package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"krishi/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's header when
// present, and logs the outcome at debug level.
func RequestID(log *logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Set("request_id", id)
			c.Response().Header().Set(HeaderRequestID, id)

			start := time.Now()
			err := next(c)
			log.Debug("http",
				"request_id", id,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"took", time.Since(start),
			)
			return err
		}
	}
}
