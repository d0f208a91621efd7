// Package worker runs calculations off the caller's goroutine and hands the
// result back as a one-shot message.
package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/katilimfinans/payment-plan-engine/internal/calculations"
	"github.com/katilimfinans/payment-plan-engine/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrJobPanicked is returned when a job panics instead of returning.
var ErrJobPanicked = errors.New("worker: job panicked")

// Job is a unit of work executed by the Runner.
type Job func() (interface{}, error)

// Outcome is delivered exactly once per submitted job.
type Outcome struct {
	Value interface{}
	Err   error
}

// Runner bounds how many jobs run at the same time. Jobs are independent and
// unordered; a result nobody waits for any more is dropped.
type Runner struct {
	sem *semaphore.Weighted
	log *zap.Logger
}

// NewRunner creates a Runner allowing maxConcurrent jobs at once.
func NewRunner(maxConcurrent int, log *zap.Logger) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Runner{
		sem: semaphore.NewWeighted(int64(maxConcurrent)),
		log: log,
	}
}

// Submit schedules job and returns a buffered channel that receives its outcome.
func (r *Runner) Submit(ctx context.Context, job Job) <-chan Outcome {
	out := make(chan Outcome, 1)

	go func() {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			out <- Outcome{Err: err}
			return
		}
		defer r.sem.Release(1)

		metrics.CalculationsInFlight.Inc()
		defer metrics.CalculationsInFlight.Dec()

		value, err := r.run(job)
		out <- Outcome{Value: value, Err: err}
	}()

	return out
}

// Do submits job and waits for its outcome or for ctx to end.
func (r *Runner) Do(ctx context.Context, job Job) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case outcome := <-r.Submit(ctx, job):
		return outcome.Value, outcome.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Calculate runs calculations.CalculatePaymentPlan through the runner.
func (r *Runner) Calculate(ctx context.Context, p calculations.CalculationParams) (*calculations.CalculationResult, error) {
	value, err := r.Do(ctx, func() (interface{}, error) {
		return calculations.CalculatePaymentPlan(p)
	})
	if err != nil {
		return nil, err
	}
	return value.(*calculations.CalculationResult), nil
}

func (r *Runner) run(job Job) (value interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("calculation job panicked", zap.Any("panic", rec))
			value, err = nil, fmt.Errorf("%w: %v", ErrJobPanicked, rec)
		}
	}()
	return job()
}
