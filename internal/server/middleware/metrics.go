package middleware

import (
	"time"

	"DataRizzer/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latency. The route template
// (c.Path) is used as label to keep cardinality low.
func Metrics(rec *metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			rec.RecordHTTP(c.Request().Method, path, c.Response().Status, time.Since(start))
			return nil
		}
	}
}
