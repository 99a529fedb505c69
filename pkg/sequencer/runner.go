package sequencer

import (
	"context"
	"errors"
	"time"
)

// ErrRunnerStopped is returned by calls posted to a runner whose Run has returned.
var ErrRunnerStopped = errors.New("runner stopped")

// Runner drives a Sequencer with wall-clock timers. A single goroutine, the
// one calling Run, owns the sequencer; Select and SetParameter are posted to
// it so every mutation happens on that goroutine.
type Runner struct {
	seq      *Sequencer
	commands chan command
	done     chan struct{}
	maxRuns  int
}

type command struct {
	apply func() (Deferred, bool, error)
	done  chan error
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxRuns stops Run after n scenario runs have completed. Zero runs forever.
func WithMaxRuns(n int) RunnerOption {
	return func(r *Runner) { r.maxRuns = n }
}

// NewRunner creates a runner for seq.
func NewRunner(seq *Sequencer, opts ...RunnerOption) *Runner {
	r := &Runner{seq: seq, commands: make(chan command), done: make(chan struct{})}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the current scenario and keeps the demo going until ctx is
// cancelled or the configured number of runs completes. A runner runs once.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	var pending Deferred
	arm := func(d Deferred) {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		pending = d
		timer.Reset(d.Delay)
	}
	arm(r.seq.Start())

	completed := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			fired := pending
			next, ok := r.seq.Fire(fired)
			if !ok {
				continue
			}
			if fired.Action == ActionAdvance {
				completed++
				if r.maxRuns > 0 && completed >= r.maxRuns {
					return nil
				}
			}
			arm(next)

		case c := <-r.commands:
			d, restart, err := c.apply()
			if err == nil && restart {
				// The old run's timer is stopped here; its token is already stale.
				arm(d)
			}
			c.done <- err
		}
	}
}

func (r *Runner) post(ctx context.Context, apply func() (Deferred, bool, error)) error {
	c := command{apply: apply, done: make(chan error, 1)}
	select {
	case r.commands <- c:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-c.done:
		return err
	case <-r.done:
		// Run may have answered just before it returned.
		select {
		case err := <-c.done:
			return err
		default:
			return ErrRunnerStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Select switches to the scenario at index, cancelling the current run.
func (r *Runner) Select(ctx context.Context, index int) error {
	return r.post(ctx, func() (Deferred, bool, error) {
		d, err := r.seq.Select(index)
		return d, true, err
	})
}

// SetParameter applies a parameter edit on the runner's goroutine.
func (r *Runner) SetParameter(ctx context.Context, name, raw string) error {
	return r.post(ctx, func() (Deferred, bool, error) {
		return Deferred{}, false, r.seq.SetParameter(name, raw)
	})
}

// State returns a snapshot taken on the runner's goroutine.
func (r *Runner) State(ctx context.Context) (State, error) {
	var st State
	err := r.post(ctx, func() (Deferred, bool, error) {
		st = r.seq.State()
		return Deferred{}, false, nil
	})
	return st, err
}
