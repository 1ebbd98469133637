// Package health tracks the readiness of the dashboard's dependencies: the
// loaded project snapshot and the projects source.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/ports"
)

// DefaultCheckTimeout bounds each check when New is given no option.
const DefaultCheckTimeout = 2 * time.Second

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry runs registered checkers concurrently. Safe for concurrent use.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds how long a single check may run. Zero or negative
// leaves checks bounded only by the caller's context.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.timeout = d
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every check in parallel and returns the results by name.
// When two checkers share a name the one registered last wins. A check that
// outlives its timeout reports context.DeadlineExceeded.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			errs[i] = r.run(ctx, c)
		})
	}
	wg.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}

func (r *Registry) run(ctx context.Context, c ports.HealthChecker) (err error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("health check panicked: %v", v)
		}
	}()
	return c.HealthCheck(ctx)
}

// Func adapts a function into a named checker.
type Func struct {
	name  string
	check func(ctx context.Context) error
}

var _ ports.HealthChecker = Func{}

// NewFunc returns a checker reporting under name.
func NewFunc(name string, check func(ctx context.Context) error) Func {
	return Func{name: name, check: check}
}

// Name implements [ports.HealthChecker].
func (f Func) Name() string { return f.name }

// HealthCheck implements [ports.HealthChecker]. A nil check is always healthy.
func (f Func) HealthCheck(ctx context.Context) error {
	if f.check == nil {
		return nil
	}
	return f.check(ctx)
}
