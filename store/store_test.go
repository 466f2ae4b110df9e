package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
)

func TestCreateAndGet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return now })

	created := s.Create("Ada", "ada@example.com", 36)
	require.Equal(t, int64(1), created.Id)
	require.Equal(t, "Ada", created.Name)
	require.Equal(t, "ada@example.com", created.Contact)
	require.Equal(t, int32(36), created.Age)
	require.Equal(t, now.Format(time.RFC3339), created.CreatedAt)

	got, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, created, got)

	_, ok = s.Get(42)
	require.False(t, ok)
}

func TestIdsStrictlyIncreasing(t *testing.T) {
	s := New()
	var previous int64
	for i := 0; i < 10; i++ {
		record := s.Create(fmt.Sprintf("record-%d", i), "", 0)
		require.Greater(t, record.Id, previous)
		previous = record.Id
	}
}

func TestConcurrentCreates(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 50

	s := New()
	ids := make(chan int64, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				ids <- s.Create("concurrent", "", 0).Id
			}
		}()
	}
	wg.Wait()
	close(ids)

	// Every id unique, and collectively they form the range [1, N].
	seen := make([]int64, 0, goroutines*perGoroutine)
	for id := range ids {
		seen = append(seen, id)
	}
	require.Len(t, seen, goroutines*perGoroutine)
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	for i, id := range seen {
		require.Equal(t, int64(i+1), id)
	}
	require.Equal(t, goroutines*perGoroutine, s.Len())
}

func TestListSnapshot(t *testing.T) {
	s := New()
	s.Create("first", "", 0)
	s.Create("second", "", 0)

	snapshot := s.List()
	require.Len(t, snapshot, 2)
	require.Equal(t, int64(1), snapshot[0].Id)
	require.Equal(t, int64(2), snapshot[1].Id)

	// A record created after the snapshot must not appear in it.
	s.Create("third", "", 0)
	require.Len(t, snapshot, 2)
	require.Len(t, s.List(), 3)
}

func TestSeed(t *testing.T) {
	s := New()
	s.Seed(
		&recordstorepb.CreateRecordRequest{Name: "Sam", Contact: "sam@example.com", Age: 30},
		&recordstorepb.CreateRecordRequest{Name: "Kim", Contact: "kim@example.com", Age: 25},
	)
	require.Equal(t, 2, s.Len())

	record, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, "Kim", record.Name)
}

func TestHealthCheck(t *testing.T) {
	s := New()
	require.NoError(t, s.HealthCheck(context.Background()))

	s.Create("Ada", "ada@example.com", 36)
	require.NoError(t, s.HealthCheck(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.HealthCheck(ctx), context.Canceled)

	s.nextID = 10
	require.Error(t, s.HealthCheck(context.Background()))
}
