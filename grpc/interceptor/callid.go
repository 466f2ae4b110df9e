package interceptor

import (
	"context"

	"github.com/google/uuid"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware/v2"
	"google.golang.org/grpc"

	"github.com/recordstore-io/recordstore/contexttag"
)

// CallIDTagKey is the tag under which the per-call id is stored.
const CallIDTagKey = "call_id"

// UnaryServerCallID tags every unary call with a fresh call id.
// Combined with the logging ContextHandler, every log line emitted while
// handling the call carries the id.
func UnaryServerCallID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(tagCallID(ctx), req)
	}
}

// StreamServerCallID tags every streaming call with a fresh call id.
func StreamServerCallID() grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		wrapped := &grpc_middleware.WrappedServerStream{
			ServerStream:   stream,
			WrappedContext: tagCallID(stream.Context()),
		}
		return handler(srv, wrapped)
	}
}

func tagCallID(ctx context.Context) context.Context {
	ctx = contexttag.SetOntoContext(ctx)
	id, err := uuid.NewV7()
	if err != nil {
		// Best effort only. A call without an id is still served.
		return ctx
	}
	contexttag.Set(ctx, CallIDTagKey, id.String())
	return ctx
}

// CallIDFromContext returns the call id tagged onto the context, if any.
func CallIDFromContext(ctx context.Context) (string, bool) {
	value, ok := contexttag.Get(ctx, CallIDTagKey)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
