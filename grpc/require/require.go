// Package require provides test assertions for gRPC outcomes.
package require

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error asserts that err is a gRPC error matching the given gRPC code.
func Error(t *testing.T, code codes.Code, err error) {
	t.Helper()
	require.Error(t, err)
	status, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, code, status.Code())
}

// Equal asserts that two messages are identical, reporting a readable diff.
func Equal(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()
	diff := cmp.Diff(expected, actual, opts...)
	require.Empty(t, diff, diff)
}

// NotEqual asserts that two messages differ.
func NotEqual(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()
	diff := cmp.Diff(expected, actual, opts...)
	require.NotEmpty(t, diff, diff)
}
