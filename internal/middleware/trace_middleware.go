package middleware

import (
	"studyRecommender/business/recommendation"

	"github.com/labstack/echo/v4"
)

// TraceMiddleware copies the request id set by echo's RequestID middleware
// into the request context so services can log it.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(recommendation.WithTraceID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
