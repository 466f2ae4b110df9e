// Package routine runs a function in a supervised background loop.
package routine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PermanentError is an error that stops a routine for good.
type PermanentError struct{ Err error }

// Error implements the error interface.
func (e *PermanentError) Error() string { return fmt.Sprintf("permanent error: %v", e.Err) }

// Is is used by errors.Is() to match correctly.
func (e *PermanentError) Is(err error) bool {
	_, ok := err.(*PermanentError)
	return ok
}

// NewPermanentError instantiates and returns a new permanent error.
func NewPermanentError(message string, args ...any) *PermanentError {
	return &PermanentError{Err: fmt.Errorf(message, args...)}
}

// FN is a routine function.
type FN func(context.Context) error

// Routine is a wrapper around a function that is executed in a loop on its own goroutine.
type Routine struct {
	log *slog.Logger

	name      string
	fn        FN
	exited    chan struct{}
	closeOnce sync.Once
	cancel    context.CancelFunc

	interval             time.Duration
	constantBackOff      *backoff.ConstantBackOff
	maxConsecutiveErrors int
	errorCounter         prometheus.Counter
}

// New instantiates and returns a new Routine.
func New(name string, fn FN) *Routine {
	return &Routine{
		log:    slog.Default(),
		name:   name,
		fn:     fn,
		exited: make(chan struct{}),
	}
}

// WithLogger sets the logger used by this routine.
func (r *Routine) WithLogger(logger *slog.Logger) *Routine {
	r.log = logger
	return r
}

// WithInterval sets the interval at which the fn is executed.
func (r *Routine) WithInterval(interval time.Duration) *Routine {
	r.interval = interval
	return r
}

// WithMaxConsecutiveErrors sets a threshold which, if exceeded, stops the routine.
func (r *Routine) WithMaxConsecutiveErrors(maxConsecutiveErrors int) *Routine {
	r.maxConsecutiveErrors = maxConsecutiveErrors
	return r
}

// WithConstantBackOff adds a constant backoff after every non-permanent error.
func (r *Routine) WithConstantBackOff(duration time.Duration) *Routine {
	r.constantBackOff = backoff.NewConstantBackOff(duration)
	return r
}

// WithErrorCounter registers a prometheus counter of errors returned by the routine's fn.
func (r *Routine) WithErrorCounter(name string) *Routine {
	r.errorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: "Errors returned from routine",
	})
	return r
}

// Start the routine. Non-blocking call.
func (r *Routine) Start(ctx context.Context) *Routine {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.log = r.log.With("routine", r.name)
	r.log.InfoContext(ctx, "started routine")

	go func() {
		defer close(r.exited)
		consecutiveErrors := 0
		for {
			err := r.fn(ctx)
			switch {
			case err == nil:
				consecutiveErrors = 0
			case errors.Is(err, context.Canceled):
				return
			default:
				if r.errorCounter != nil {
					r.errorCounter.Inc()
				}
				consecutiveErrors++
				r.log.WarnContext(ctx, "routine iteration failed", "error", err)
				if errors.Is(err, &PermanentError{}) {
					r.log.ErrorContext(ctx, "routine hit permanent error, exiting", "error", err)
					return
				}
				if r.maxConsecutiveErrors != 0 && consecutiveErrors >= r.maxConsecutiveErrors {
					r.log.ErrorContext(ctx, "routine exceeded max consecutive errors, exiting", "max", r.maxConsecutiveErrors)
					return
				}
				if r.constantBackOff != nil {
					select {
					case <-ctx.Done():
						return
					case <-time.After(r.constantBackOff.NextBackOff()):
					}
				}
			}

			if r.interval == 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.interval):
			}
		}
	}()
	return r
}

// Close stops the routine and waits for its goroutine to exit.
func (r *Routine) Close() {
	r.closeOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		<-r.exited
	})
}

// Exited returns a channel closed once the routine has exited.
func (r *Routine) Exited() <-chan struct{} { return r.exited }
