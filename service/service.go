// Package service implements the recordstore.v1.RecordStore service.
package service

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
	commongrpc "github.com/recordstore-io/recordstore/grpc"
	"github.com/recordstore-io/recordstore/store"
)

// Opts holds the service opts.
type Opts struct {
	StreamIntervalMs int `long:"stream-interval-ms" env:"STREAM_INTERVAL_MS" default:"100" description:"Pause between records emitted on a ListRecords stream, in milliseconds."`
}

func (o *Opts) streamInterval() time.Duration {
	return time.Duration(o.StreamIntervalMs) * time.Millisecond
}

// Service dispatches RPCs onto the shared record store.
type Service struct {
	opts  *Opts
	log   *slog.Logger
	store *store.Store
}

// New instantiates and returns a new service. The store is injected: every
// invocation, concurrent or not, operates against this one instance.
func New(opts *Opts, store *store.Store) *Service {
	return &Service{
		opts:  opts,
		log:   slog.Default(),
		store: store,
	}
}

// WithLogger sets the logger used by the service.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	s.log = logger
	return s
}

// Register registers the service onto the given server.
func (s *Service) Register(server *commongrpc.Server) {
	recordstorepb.RegisterRecordStoreServer(server.Raw, s)
}

// HealthCheck reports whether the service can serve.
func (s *Service) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// GetRecord returns the record with the given id, or NotFound.
func (s *Service) GetRecord(ctx context.Context, request *recordstorepb.GetRecordRequest) (*recordstorepb.Record, error) {
	s.log.DebugContext(ctx, "get record", "id", request.Id)
	record, ok := s.store.Get(request.Id)
	if !ok {
		notFound := commongrpc.Errorf(codes.NotFound, "record with id %d not found", request.Id)
		if detailed, err := notFound.WithLocalizedMessage("No record exists with id %d.", request.Id); err == nil {
			notFound = detailed
		}
		return nil, notFound.Err()
	}
	return record, nil
}

// CreateRecord creates a single record. It never fails.
func (s *Service) CreateRecord(ctx context.Context, request *recordstorepb.CreateRecordRequest) (*recordstorepb.Record, error) {
	record := s.store.Create(request.Name, request.Contact, request.Age)
	s.log.DebugContext(ctx, "created record", "id", record.Id, "name", record.Name)
	return record, nil
}

// ListRecords emits every record present at call start, in insertion order,
// pausing between emissions. Records created after the snapshot are not
// emitted. Cancellation ends the stream cleanly.
func (s *Service) ListRecords(request *recordstorepb.ListRecordsRequest, stream recordstorepb.RecordStore_ListRecordsServer) error {
	ctx := stream.Context()
	snapshot := s.store.List()
	s.log.DebugContext(ctx, "listing records", "count", len(snapshot))
	return emit(ctx, s.opts.streamInterval(), snapshot, stream.Send)
}

// BatchCreateRecords consumes create requests sequentially, in arrival order,
// until the client half-closes, then returns the created records in that same
// order. An aborted inbound stream produces no response; records created
// before the abort remain in the store.
func (s *Service) BatchCreateRecords(stream recordstorepb.RecordStore_BatchCreateRecordsServer) error {
	ctx := stream.Context()
	var records []*recordstorepb.Record
	err := consume(ctx, stream.Recv, func(request *recordstorepb.CreateRecordRequest) error {
		records = append(records, s.store.Create(request.Name, request.Contact, request.Age))
		return nil
	})
	if err != nil {
		return err
	}
	s.log.DebugContext(ctx, "batch created records", "count", len(records))
	return stream.SendAndClose(&recordstorepb.BatchCreateRecordsResponse{
		CreatedCount: int32(len(records)),
		Records:      records,
	})
}

// StreamCreateRecords creates a record per inbound request and echoes each
// created record back immediately, in arrival order.
func (s *Service) StreamCreateRecords(stream recordstorepb.RecordStore_StreamCreateRecordsServer) error {
	return consume(stream.Context(), stream.Recv, func(request *recordstorepb.CreateRecordRequest) error {
		return stream.Send(s.store.Create(request.Name, request.Contact, request.Age))
	})
}
