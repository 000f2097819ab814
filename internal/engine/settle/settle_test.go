package settle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports/mocks"
	"go.trai.ch/faasbench/internal/engine/settle"
	"go.uber.org/mock/gomock"
)

func newWaiter(t *testing.T) (*settle.Waiter, *[]time.Duration) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	var slept []time.Duration
	w := settle.New(log).WithSleep(func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})
	return w, &slept
}

var fastPolicy = domain.SettlePolicy{PollInterval: time.Millisecond, PollTimeout: 200 * time.Millisecond}

func TestDelay(t *testing.T) {
	t.Parallel()
	w, slept := newWaiter(t)

	require.NoError(t, w.Delay(context.Background(), 0, "nothing"))
	require.NoError(t, w.Delay(context.Background(), 10*time.Second, "function f"))

	assert.Equal(t, []time.Duration{10 * time.Second}, *slept)
}

func TestDelay_RealSleepHonoursContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := settle.New(log).Delay(ctx, time.Hour, "function f")
	require.ErrorIs(t, err, context.Canceled)
}

func TestUntil_Ready(t *testing.T) {
	t.Parallel()
	w, _ := newWaiter(t)

	calls := 0
	err := w.Until(context.Background(), fastPolicy, "f", func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_Timeout(t *testing.T) {
	t.Parallel()
	w, _ := newWaiter(t)

	policy := domain.SettlePolicy{PollInterval: time.Millisecond, PollTimeout: 20 * time.Millisecond}
	err := w.Until(context.Background(), policy, "f", func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, domain.ErrSettleTimeout)
}

func TestUntil_ErrorStopsPolling(t *testing.T) {
	t.Parallel()
	w, _ := newWaiter(t)

	boom := errors.New("throttled")
	calls := 0
	err := w.Until(context.Background(), fastPolicy, "f", func(context.Context) (bool, error) {
		calls++
		return false, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestFunction_PollsReporter(t *testing.T) {
	t.Parallel()
	w, slept := newWaiter(t)
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockStatusReporter(ctrl)

	handle := domain.FunctionHandle{Name: "f"}
	gomock.InOrder(
		reporter.EXPECT().Ready(gomock.Any(), handle).Return(false, nil),
		reporter.EXPECT().Ready(gomock.Any(), handle).Return(true, nil),
	)

	require.NoError(t, w.Function(context.Background(), fastPolicy, 5*time.Second, reporter, handle))
	assert.Empty(t, *slept)
}

func TestFunction_FallsBackToDelay(t *testing.T) {
	t.Parallel()
	w, slept := newWaiter(t)

	policy := domain.SettlePolicy{CreateDelay: 10 * time.Second}
	require.NoError(t, w.Function(context.Background(), policy, policy.CreateDelay, nil, domain.FunctionHandle{Name: "f"}))
	assert.Equal(t, []time.Duration{10 * time.Second}, *slept)
}
