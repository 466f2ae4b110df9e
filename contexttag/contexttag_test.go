package contexttag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()

	// Without initialization, tagging is a no-op.
	require.False(t, Set(ctx, "key", "value"))
	_, ok := Get(ctx, "key")
	require.False(t, ok)
	require.Nil(t, Pairs(ctx))

	ctx = SetOntoContext(ctx)
	require.True(t, Set(ctx, "key", "value"))
	value, ok := Get(ctx, "key")
	require.True(t, ok)
	require.Equal(t, "value", value)
}

func TestTagsVisibleThroughChildContexts(t *testing.T) {
	ctx := SetOntoContext(context.Background())
	child, cancel := context.WithCancel(ctx)
	defer cancel()

	// A tag set on a derived context is visible from the parent's tag set.
	require.True(t, Set(child, "key", "value"))
	value, ok := Get(ctx, "key")
	require.True(t, ok)
	require.Equal(t, "value", value)
}

func TestPairsSorted(t *testing.T) {
	ctx := SetOntoContext(context.Background())
	Set(ctx, "b", 2)
	Set(ctx, "a", 1)
	require.Equal(t, []any{"a", 1, "b", 2}, Pairs(ctx))
}
