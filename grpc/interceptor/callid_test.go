package interceptor_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/recordstore-io/recordstore/contexttag"
	"github.com/recordstore-io/recordstore/grpc/interceptor"
	"github.com/recordstore-io/recordstore/logging"
)

func TestUnaryServerCallID(t *testing.T) {
	intercept := interceptor.UnaryServerCallID()
	response, err := intercept(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"},
		func(ctx context.Context, req any) (any, error) {
			id, ok := interceptor.CallIDFromContext(ctx)
			require.True(t, ok)
			require.NotEmpty(t, id)
			return "response", nil
		})
	require.NoError(t, err)
	require.Equal(t, "response", response)
}

func TestCallIDReachesLogRecords(t *testing.T) {
	buffer := &bytes.Buffer{}
	log := slog.New(logging.NewContextHandler(slog.NewTextHandler(buffer, nil), contexttag.Pairs))

	intercept := interceptor.UnaryServerCallID()
	_, err := intercept(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"},
		func(ctx context.Context, req any) (any, error) {
			log.InfoContext(ctx, "handling")
			id, ok := interceptor.CallIDFromContext(ctx)
			require.True(t, ok)
			require.Contains(t, buffer.String(), interceptor.CallIDTagKey+"="+id)
			return nil, nil
		})
	require.NoError(t, err)
}

func TestCallIDFromContextMissing(t *testing.T) {
	_, ok := interceptor.CallIDFromContext(context.Background())
	require.False(t, ok)
}
