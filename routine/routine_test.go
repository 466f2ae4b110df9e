package routine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func waitExited(t *testing.T, r *Routine) {
	t.Helper()
	select {
	case <-r.Exited():
	case <-time.After(3 * time.Second):
		t.Fatal("routine did not exit")
	}
}

func TestRoutineRunsOnInterval(t *testing.T) {
	var runs atomic.Int64
	r := New("ticker", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}).WithInterval(time.Millisecond).Start(context.Background())
	defer r.Close()

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestRoutineStopsOnPermanentError(t *testing.T) {
	var runs atomic.Int64
	r := New("broken", func(ctx context.Context) error {
		runs.Add(1)
		return NewPermanentError("dependency gone: %s", "storage")
	}).Start(context.Background())

	waitExited(t, r)
	require.Equal(t, int64(1), runs.Load())
}

func TestRoutineStopsAfterMaxConsecutiveErrors(t *testing.T) {
	var runs atomic.Int64
	r := New("flaky", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	}).
		WithConstantBackOff(time.Millisecond).
		WithMaxConsecutiveErrors(3).
		WithErrorCounter("test_flaky_routine_errors_total").
		Start(context.Background())

	waitExited(t, r)
	require.Equal(t, int64(3), runs.Load())
	require.Equal(t, float64(3), testutil.ToFloat64(r.errorCounter))
}

func TestRoutineCloseStopsLoop(t *testing.T) {
	r := New("idle", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}).Start(context.Background())

	r.Close()
	waitExited(t, r)
}
