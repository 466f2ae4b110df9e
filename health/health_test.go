package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recordstore-io/recordstore/health"
)

func TestCombineChecksAllHealthy(t *testing.T) {
	healthy := func(ctx context.Context) error { return nil }
	check := health.CombineChecks(healthy, healthy)
	require.NoError(t, check(context.Background()))
}

func TestCombineChecksPropagatesFailure(t *testing.T) {
	failure := errors.New("dependency down")
	check := health.CombineChecks(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return failure },
	)
	require.ErrorIs(t, check(context.Background()), failure)
}

func TestCombineChecksNoChecks(t *testing.T) {
	require.NoError(t, health.CombineChecks()(context.Background()))
}

func TestCombineChecksCancelsSiblings(t *testing.T) {
	failure := errors.New("dependency down")
	check := health.CombineChecks(
		func(ctx context.Context) error { return failure },
		func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
				return errors.New("sibling kept running after failure")
			}
		},
	)
	require.ErrorIs(t, check(context.Background()), failure)
}
