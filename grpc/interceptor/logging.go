package interceptor

import (
	"context"
	"log/slog"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

var loggingInterceptorOptions = []grpc_logging.Option{
	grpc_logging.WithLogOnEvents(grpc_logging.FinishCall),
	grpc_logging.WithLevels(errorCodeToLogLevel),
}

// UnaryServerLogging logs every unary call on completion.
func UnaryServerLogging(log *slog.Logger) grpc.UnaryServerInterceptor {
	return grpc_logging.UnaryServerInterceptor(loggingInterceptor(log), loggingInterceptorOptions...)
}

// StreamServerLogging logs every streaming call on completion.
func StreamServerLogging(log *slog.Logger) grpc.StreamServerInterceptor {
	return grpc_logging.StreamServerInterceptor(loggingInterceptor(log), loggingInterceptorOptions...)
}

// Map gRPC return codes to log levels.
func errorCodeToLogLevel(code codes.Code) grpc_logging.Level {
	switch code {
	case codes.OK, codes.Canceled, codes.AlreadyExists:
		return grpc_logging.LevelDebug

	case codes.DeadlineExceeded, codes.PermissionDenied, codes.ResourceExhausted, codes.FailedPrecondition, codes.Aborted,
		codes.OutOfRange, codes.Unavailable, codes.Unauthenticated, codes.InvalidArgument, codes.NotFound:
		return grpc_logging.LevelWarn

	default:
		return grpc_logging.LevelError
	}
}

// loggingInterceptor adapts an slog logger to the middleware logger interface.
func loggingInterceptor(log *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		log.Log(ctx, slog.Level(level), msg, fields...)
	})
}
