// Package settle waits for provider-side changes to take effect.
package settle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var errNotReady = errors.New("not ready")

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Waiter blocks after asynchronous provider mutations.
type Waiter struct {
	logger ports.Logger
	sleep  SleepFunc
}

// New returns a Waiter sleeping on real timers.
func New(logger ports.Logger) *Waiter {
	return &Waiter{logger: logger, sleep: sleepContext}
}

// WithSleep returns a copy of w using fn for fixed delays.
func (w *Waiter) WithSleep(fn SleepFunc) *Waiter {
	return &Waiter{logger: w.logger, sleep: fn}
}

// Delay blocks for d. A zero delay returns immediately.
func (w *Waiter) Delay(ctx context.Context, d time.Duration, subject string) error {
	if d <= 0 {
		return nil
	}
	w.logger.Info(fmt.Sprintf("waiting %s for %s to settle", d, subject))
	return w.sleep(ctx, d)
}

// Until polls ready with exponential backoff until it reports true. Polling
// stops with domain.ErrSettleTimeout once policy.PollTimeout has elapsed, and
// with the error of ready as soon as it fails.
func (w *Waiter) Until(ctx context.Context, policy domain.SettlePolicy, subject string, ready func(context.Context) (bool, error)) error {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(policy.PollInterval),
		backoff.WithMaxElapsedTime(policy.PollTimeout),
	)

	w.logger.Info(fmt.Sprintf("waiting for %s to become ready", subject))
	err := backoff.Retry(func() error {
		ok, err := ready(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errNotReady
		}
		return nil
	}, backoff.WithContext(b, ctx))

	if errors.Is(err, errNotReady) {
		return errors.Join(domain.ErrSettleTimeout, zerr.With(zerr.New(subject), "timeout", policy.PollTimeout.String()))
	}
	return err
}

// Function waits after a mutation of handle. Providers with a status query
// are polled, the others are given the fixed delay.
func (w *Waiter) Function(
	ctx context.Context,
	policy domain.SettlePolicy,
	delay time.Duration,
	reporter ports.StatusReporter,
	handle domain.FunctionHandle,
) error {
	if reporter != nil && policy.PollTimeout > 0 {
		return w.Until(ctx, policy, "function "+handle.Name, func(ctx context.Context) (bool, error) {
			return reporter.Ready(ctx, handle)
		})
	}
	return w.Delay(ctx, delay, "function "+handle.Name)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
