// Package contexttag carries request-scoped key/value tags on a context.
// Tags set by interceptors are picked up by the logging ContextHandler so
// that every log line emitted during a call carries the call's metadata.
package contexttag

import (
	"context"
	"sort"
	"sync"
)

type tagsKeyType string

const tagsKey = tagsKeyType("context-tags")

type tags struct {
	mutex  sync.RWMutex
	values map[string]any
}

// SetOntoContext initializes an empty tag set onto the context.
// Subsequent Set calls mutate this set in place, so tags added deep in a
// call chain are visible to handlers installed above it.
func SetOntoContext(ctx context.Context) context.Context {
	if _, ok := ctx.Value(tagsKey).(*tags); ok {
		return ctx
	}
	return context.WithValue(ctx, tagsKey, &tags{values: map[string]any{}})
}

// Set tags the context with the given key/value.
// Returns false if the context has no tag set initialized.
func Set(ctx context.Context, key string, value any) bool {
	t, ok := ctx.Value(tagsKey).(*tags)
	if !ok {
		return false
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.values[key] = value
	return true
}

// Get returns the value tagged under key, if any.
func Get(ctx context.Context, key string) (any, bool) {
	t, ok := ctx.Value(tagsKey).(*tags)
	if !ok {
		return nil, false
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	value, ok := t.values[key]
	return value, ok
}

// Pairs returns all tags as a flat key/value slice, with keys sorted for
// deterministic output. Shaped for logging.ExtractFromContextFn.
func Pairs(ctx context.Context) []any {
	t, ok := ctx.Value(tagsKey).(*tags)
	if !ok {
		return nil
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	keys := make([]string, 0, len(t.values))
	for key := range t.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]any, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, key, t.values[key])
	}
	return pairs
}
