// Package store holds the in-memory record store shared by all RPC invocations.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
)

var recordsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "recordstore_records_created_total",
	Help: "Number of records created over the store's lifetime",
})

// Store is an append-only, insertion-ordered collection of records.
//
// A single Store instance is shared by every RPC invocation; the mutex
// serializes id allocation and appends so ids are unique and strictly
// increasing, and so List snapshots are never torn by concurrent writers.
type Store struct {
	mutex   sync.Mutex
	nextID  int64
	records []*recordstorepb.Record

	now func() time.Time
}

// New instantiates an empty store. Ids start at 1.
func New() *Store {
	return &Store{
		nextID: 1,
		now:    time.Now,
	}
}

// WithClock overrides the clock used to stamp CreatedAt. Used in tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Create allocates the next id, stamps the creation time and appends the
// record. It never fails.
func (s *Store) Create(name, contact string, age int32) *recordstorepb.Record {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	record := &recordstorepb.Record{
		Id:        s.nextID,
		Name:      name,
		Contact:   contact,
		Age:       age,
		CreatedAt: s.now().Format(time.RFC3339),
	}
	s.nextID++
	s.records = append(s.records, record)
	recordsCreated.Inc()
	return record
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (*recordstorepb.Record, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, record := range s.records {
		if record.Id == id {
			return record, true
		}
	}
	return nil, false
}

// List returns a snapshot of all records in insertion order, as of the time
// of the call. The returned slice is a copy; the records it points to are
// shared and must be treated as immutable.
func (s *Store) List() []*recordstorepb.Record {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	snapshot := make([]*recordstorepb.Record, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.records)
}

// HealthCheck verifies the id counter and the record slice have not drifted
// apart. With an append-only store, nextID is always len(records)+1.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.nextID != int64(len(s.records))+1 {
		return fmt.Errorf("store corrupted: next id %d with %d records", s.nextID, len(s.records))
	}
	return nil
}

// Seed creates one record per request, in order. Used at boot to pre-populate
// the store.
func (s *Store) Seed(requests ...*recordstorepb.CreateRecordRequest) {
	for _, request := range requests {
		s.Create(request.Name, request.Contact, request.Age)
	}
}
