// Package goroutine runs background work with a bounded concurrency limit
// and panic containment, so a misbehaving task cannot take the process down.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/peyvandhq/peyvand/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is the per-CPU limit used when NewManager receives a
// non-positive value.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines with a concurrency cap. Errors
// returned by tasks are collected and surfaced from Wait.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	stateM sync.RWMutex
	closed bool
}

// NewManager creates a Manager allowing at most maxGoroutine concurrent tasks.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f when capacity is available. When the manager is closed or
// at its limit the task is dropped with a warning rather than blocking the
// caller.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.stateM.RLock()
	closed := g.closed
	g.stateM.RUnlock()

	if closed {
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")

		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(pCtx, "maximum goroutine limit reached, failed to start new goroutine")

		return
	}

	g.wg.Go(func() {
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "recover", rvr, "stack", paths)
				} else {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "recover", rvr, "stack", string(stack))
				}
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
		default:
			if err := f(pCtx); err != nil {
				g.mu.Lock()
				g.errs = append(g.errs, err)
				g.mu.Unlock()
			}
		}
	})
}

// Wait closes the manager, blocks until scheduled tasks finish, and returns
// the collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateM.Lock()
	g.closed = true
	g.stateM.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
