package interceptor

import (
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

const (
	// maxRetries is the number of times we retry a retryable call.
	maxRetries = 5
	// retryBackoff is the base backoff we apply between retries.
	retryBackoff = 100 * time.Millisecond
)

// `Unavailable` means the system is currently unavailable and the client should retry.
var retriableCodes = []codes.Code{
	codes.Unavailable,
}

// UnaryClientRetry returns an interceptor that retries unary calls on Unavailable errors.
func UnaryClientRetry() grpc.UnaryClientInterceptor {
	return grpc_retry.UnaryClientInterceptor(
		grpc_retry.WithBackoff(grpc_retry.BackoffExponential(retryBackoff)),
		grpc_retry.WithMax(maxRetries),
		grpc_retry.WithCodes(retriableCodes...),
	)
}
