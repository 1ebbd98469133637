package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
	"github.com/jsamuelsen11/jeeves-dashboard/internal/platform/logging"
)

// Timeout bounds each request by d. The handler writes into a buffer from
// its own goroutine; the buffer reaches the client only if the handler
// returns in time, otherwise the client gets a 504 problem response and
// later writes fail with http.ErrHandlerTimeout. Handler panics resurface
// on the serving goroutine.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			buf := &bufferedResponse{header: make(http.Header)}
			finished := make(chan any, 1)

			go func() {
				var recovered any
				defer func() { finished <- recovered }()
				defer func() { recovered = recover() }()
				next.ServeHTTP(buf, r.WithContext(ctx))
			}()

			select {
			case v := <-finished:
				if v != nil {
					panic(v)
				}
				buf.copyTo(w)
			case <-ctx.Done():
				buf.abandon()
				logging.FromContext(ctx).WarnContext(ctx, "request timed out",
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d),
				)
				dto.WriteErrorResponse(w, r, fmt.Errorf("request exceeded %s: %w", d, domain.ErrTimeout))
			}
		})
	}
}

// bufferedResponse holds a handler's response until Timeout decides its
// fate. The handler goroutine and Timeout share it under mu.
type bufferedResponse struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	abandoned bool
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.abandoned = true
}

// copyTo replays the buffered response onto w. A handler that wrote
// nothing leaves w untouched so the server's implicit 200 applies.
func (b *bufferedResponse) copyTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	if b.body.Len() > 0 {
		_, _ = b.body.WriteTo(w)
	}
}
