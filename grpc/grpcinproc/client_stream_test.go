package grpcinproc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/recordstore-io/recordstore/grpc/grpcinproc"
)

type message struct {
	Value string `json:"value"`
}

// A cancelled call must surface context.Canceled to the handler even when the
// client half-closes at the same time; the handler must never mistake the
// abort for a clean end of stream.
func TestClientStreamCancelBeatsHalfClose(t *testing.T) {
	handlerErr := make(chan error, 1)
	call := grpcinproc.NewClientStreamAsClient[message, message, grpc.ServerStream](
		func(stream grpc.ServerStream) error {
			for {
				received := &message{}
				if err := stream.RecvMsg(received); err != nil {
					handlerErr <- err
					return err
				}
			}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream, err := call(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&message{Value: "a"}))

	cancel()
	_, err = stream.CloseAndRecv()
	require.Error(t, err)
	require.ErrorIs(t, <-handlerErr, context.Canceled)
}
