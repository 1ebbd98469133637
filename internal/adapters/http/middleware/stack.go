// Package middleware holds the inbound HTTP pipeline of the dashboard server.
//
// Stack returns the pipeline in request order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → Timeout → Handler
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/telemetry"
)

// Stack returns the server middleware, outermost first. A zero timeout
// leaves requests unbounded.
func Stack(logger *slog.Logger, metrics *telemetry.Metrics, timeout time.Duration) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(metrics),
		Logging(logger),
	}
	if timeout > 0 {
		stack = append(stack, Timeout(timeout))
	}
	return stack
}

// Chain composes middlewares into one; the first argument runs first.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			h = middlewares[i](h)
		}
		return h
	}
}
