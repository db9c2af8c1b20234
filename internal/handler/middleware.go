package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"absencehub/internal/service"
)

const headerRequestID = "X-Request-ID"

// RequestContext assigns every request an id, echoes it in the response and
// tags the request context so audit entries carry it. The acting user is
// taken from X-User when the proxy in front of the API sets it.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(headerRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Set(headerRequestID, id)
			c.Response().Header().Set(headerRequestID, id)

			ctx := service.WithRequestID(req.Context(), id)
			if user := req.Header.Get("X-User"); user != "" {
				ctx = service.WithUser(ctx, user)
			}
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// RequestLogger writes one logrus line per request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			entry := logrus.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     c.Response().Status,
				"latency":    time.Since(start).String(),
				"request_id": requestID(c),
			})
			if c.Response().Status >= 500 {
				entry.Error("Request handled")
			} else {
				entry.Info("Request handled")
			}
			return nil
		}
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get(headerRequestID).(string)
	return id
}
