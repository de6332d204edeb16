package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/communitymap/communitymap/server/internal/observability"
)

// AuditLog returns an echo middleware that attaches a request context to every
// request, logs its outcome, and feeds the per-route metrics. Logging never
// fails the request.
func AuditLog(logger *slog.Logger) echo.MiddlewareFunc {
	metrics := observability.GlobalMetrics()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqCtx := observability.NewRequestContext(logger, req.Method, req.URL.Path, c.RealIP())
			c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), reqCtx)))

			route := req.Method + " " + c.Path()
			metrics.RecordRequest(route)

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}
			duration := time.Since(reqCtx.StartTime)
			metrics.RecordDuration(route, duration)
			if err != nil || status >= 500 {
				metrics.RecordFailure(route)
			}

			attrs := []slog.Attr{
				slog.Int(observability.LogFieldStatus, status),
				slog.Int64(observability.LogFieldDuration, duration.Milliseconds()),
				slog.String("user_agent", req.UserAgent()),
			}
			if err != nil {
				reqCtx.Error("request failed", err, attrs...)
			} else {
				reqCtx.Info("request completed", attrs...)
			}
			return err
		}
	}
}
