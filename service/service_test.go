package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	recordstorepb "github.com/recordstore-io/recordstore/api/recordstore/v1"
	"github.com/recordstore-io/recordstore/grpc/grpcinproc"
	grpcrequire "github.com/recordstore-io/recordstore/grpc/require"
	"github.com/recordstore-io/recordstore/store"
)

func newTestService(t *testing.T, streamIntervalMs int) (*Service, *store.Store) {
	t.Helper()
	recordStore := store.New()
	return New(&Opts{StreamIntervalMs: streamIntervalMs}, recordStore), recordStore
}

func listClient(s *Service) func(context.Context, *recordstorepb.ListRecordsRequest) (grpcinproc.ServerStreamClient[recordstorepb.Record], error) {
	return grpcinproc.NewServerStreamAsClient[recordstorepb.ListRecordsRequest, recordstorepb.Record, recordstorepb.RecordStore_ListRecordsServer](s.ListRecords)
}

func batchClient(s *Service) func(context.Context) (grpcinproc.ClientStreamClient[recordstorepb.CreateRecordRequest, recordstorepb.BatchCreateRecordsResponse], error) {
	return grpcinproc.NewClientStreamAsClient[recordstorepb.CreateRecordRequest, recordstorepb.BatchCreateRecordsResponse, recordstorepb.RecordStore_BatchCreateRecordsServer](s.BatchCreateRecords)
}

func chatClient(s *Service) func(context.Context) (grpcinproc.BidiStreamClient[recordstorepb.CreateRecordRequest, recordstorepb.Record], error) {
	return grpcinproc.NewBidiStreamAsClient[recordstorepb.CreateRecordRequest, recordstorepb.Record, recordstorepb.RecordStore_StreamCreateRecordsServer](s.StreamCreateRecords)
}

func TestGetRecord(t *testing.T) {
	ctx := context.Background()
	service, recordStore := newTestService(t, 0)
	recordStore.Seed(&recordstorepb.CreateRecordRequest{Name: "Ada", Contact: "ada@example.com", Age: 36})

	t.Run("Success", func(t *testing.T) {
		record, err := service.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: 1})
		require.NoError(t, err)
		require.Equal(t, int64(1), record.Id)
		require.Equal(t, "Ada", record.Name)
		require.Equal(t, "ada@example.com", record.Contact)
		require.Equal(t, int32(36), record.Age)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := service.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: 42})
		grpcrequire.Error(t, codes.NotFound, err)
		converted := status.Convert(err)
		require.Contains(t, converted.Message(), "42")

		// The status carries a user-facing localized message detail.
		var localized *errdetails.LocalizedMessage
		for _, detail := range converted.Details() {
			if message, ok := detail.(*errdetails.LocalizedMessage); ok {
				localized = message
			}
		}
		require.NotNil(t, localized)
		require.Contains(t, localized.Message, "42")
	})
}

func TestCreateRecord(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, 0)

	record, err := service.CreateRecord(ctx, &recordstorepb.CreateRecordRequest{Name: "Sam", Contact: "sam@example.com", Age: 30})
	require.NoError(t, err)
	require.Equal(t, int64(1), record.Id)
	require.NotEmpty(t, record.CreatedAt)

	// Created records are immediately retrievable.
	got, err := service.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: record.Id})
	require.NoError(t, err)
	grpcrequire.Equal(t, record, got)

	// Every create yields a distinct record, even for identical input.
	duplicate, err := service.CreateRecord(ctx, &recordstorepb.CreateRecordRequest{Name: "Sam", Contact: "sam@example.com", Age: 30})
	require.NoError(t, err)
	grpcrequire.NotEqual(t, record, duplicate)
}

func TestListRecords(t *testing.T) {
	ctx := context.Background()
	service, recordStore := newTestService(t, 0)
	for i := 0; i < 5; i++ {
		recordStore.Seed(&recordstorepb.CreateRecordRequest{Name: fmt.Sprintf("record-%d", i)})
	}

	stream, err := listClient(service)(ctx, &recordstorepb.ListRecordsRequest{})
	require.NoError(t, err)

	// Emission follows insertion order. A record created mid-stream is not
	// part of the snapshot and must not be emitted.
	first, err := stream.Recv()
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Id)
	recordStore.Seed(&recordstorepb.CreateRecordRequest{Name: "late"})

	received := []*recordstorepb.Record{first}
	for {
		record, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		received = append(received, record)
	}
	require.Len(t, received, 5)
	for i, record := range received {
		require.Equal(t, int64(i+1), record.Id)
	}
}

func TestListRecordsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service, recordStore := newTestService(t, 5)
	for i := 0; i < 40; i++ {
		recordStore.Seed(&recordstorepb.CreateRecordRequest{Name: fmt.Sprintf("record-%d", i)})
	}

	stream, err := listClient(service)(ctx, &recordstorepb.ListRecordsRequest{})
	require.NoError(t, err)

	received := 0
	for ; received < 3; received++ {
		_, err := stream.Recv()
		require.NoError(t, err)
	}
	cancel()

	// Cancellation is polled, not preemptive: a small number of in-flight
	// messages may still arrive, but the stream stops well short of the
	// full snapshot.
	for {
		if _, err := stream.Recv(); err != nil {
			break
		}
		received++
	}
	require.LessOrEqual(t, received, 6)
}

func TestBatchCreateRecords(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, 0)

	stream, err := batchClient(service)(ctx)
	require.NoError(t, err)
	names := []string{"one", "two", "three"}
	for _, name := range names {
		require.NoError(t, stream.Send(&recordstorepb.CreateRecordRequest{Name: name}))
	}
	response, err := stream.CloseAndRecv()
	require.NoError(t, err)

	require.Equal(t, int32(3), response.CreatedCount)
	require.Len(t, response.Records, 3)
	for i, record := range response.Records {
		// Response order matches arrival order.
		require.Equal(t, names[i], record.Name)
		require.Equal(t, int64(i+1), record.Id)

		// Each record is individually retrievable afterwards.
		got, err := service.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: record.Id})
		require.NoError(t, err)
		grpcrequire.Equal(t, record, got)
	}
}

func TestBatchCreateRecordsAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	service, recordStore := newTestService(t, 0)

	stream, err := batchClient(service)(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&recordstorepb.CreateRecordRequest{Name: "one"}))
	require.NoError(t, stream.Send(&recordstorepb.CreateRecordRequest{Name: "two"}))
	cancel()

	// An aborted inbound stream yields no response: the call is
	// inconclusive, not a partial success.
	_, err = stream.CloseAndRecv()
	require.Error(t, err)

	// Best-effort-partial policy: records appended before the abort remain.
	require.Eventually(t, func() bool { return recordStore.Len() == 2 }, time.Second, 10*time.Millisecond)
}

func TestStreamCreateRecords(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t, 0)

	stream, err := chatClient(service)(ctx)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("record-%d", i)
		require.NoError(t, stream.Send(&recordstorepb.CreateRecordRequest{Name: name}))
		record, err := stream.Recv()
		require.NoError(t, err)
		require.Equal(t, name, record.Name)
		require.Equal(t, int64(i+1), record.Id)
	}
	require.NoError(t, stream.CloseSend())
	_, err = stream.Recv()
	require.Equal(t, io.EOF, err)
}

// TestScenario walks the seeded end-to-end flow: two seeded records, a unary
// get and create, a full list, and a batch of two.
func TestScenario(t *testing.T) {
	ctx := context.Background()
	service, recordStore := newTestService(t, 0)
	recordStore.Seed(
		&recordstorepb.CreateRecordRequest{Name: "Ada", Contact: "ada@example.com", Age: 36},
		&recordstorepb.CreateRecordRequest{Name: "Sam", Contact: "sam@example.com", Age: 30},
	)

	record, err := service.GetRecord(ctx, &recordstorepb.GetRecordRequest{Id: 1})
	require.NoError(t, err)
	require.Equal(t, "Ada", record.Name)

	created, err := service.CreateRecord(ctx, &recordstorepb.CreateRecordRequest{Name: "X", Contact: "x@e", Age: 30})
	require.NoError(t, err)
	require.Equal(t, int64(3), created.Id)

	stream, err := listClient(service)(ctx, &recordstorepb.ListRecordsRequest{})
	require.NoError(t, err)
	var ids []int64
	for {
		record, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ids = append(ids, record.Id)
	}
	require.Equal(t, []int64{1, 2, 3}, ids)

	batch, err := batchClient(service)(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.Send(&recordstorepb.CreateRecordRequest{Name: "Y"}))
	require.NoError(t, batch.Send(&recordstorepb.CreateRecordRequest{Name: "Z"}))
	response, err := batch.CloseAndRecv()
	require.NoError(t, err)
	require.Equal(t, int32(2), response.CreatedCount)
	require.Equal(t, int64(4), response.Records[0].Id)
	require.Equal(t, int64(5), response.Records[1].Id)
}
