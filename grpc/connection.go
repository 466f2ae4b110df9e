package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"

	"github.com/recordstore-io/recordstore/certs"
	"github.com/recordstore-io/recordstore/grpc/interceptor"
	"github.com/recordstore-io/recordstore/prometheus"
)

var clientKeepAliveParameters = keepalive.ClientParameters{
	Time:                10 * time.Second, // send pings every 10 seconds if there is no activity
	Timeout:             time.Second,      // wait 1 second for ping ack before considering the connection dead
	PermitWithoutStream: true,             // send pings even without active streams
}

// Connection wraps a gRPC client connection with the default client stack.
type Connection struct {
	opts       *Opts
	log        *slog.Logger
	connection *grpc.ClientConn

	unaryInterceptors  []grpc.UnaryClientInterceptor
	streamInterceptors []grpc.StreamClientInterceptor
	options            []grpc.DialOption
}

// NewConnection creates a new client connection wrapper. Pass nil opts
// structs to disable TLS verification and client metrics respectively.
func NewConnection(opts *Opts, certsOpts *certs.Opts, prometheusOpts *prometheus.Opts) (*Connection, error) {
	connection := &Connection{
		opts: opts,
		log:  slog.Default(),
	}

	connection.options = append(connection.options,
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(MaximumMessageSize), grpc.MaxCallSendMsgSize(MaximumMessageSize)),
		grpc.WithKeepaliveParams(clientKeepAliveParameters),
	)
	if opts.DisableTLS {
		connection.log.Warn("starting gRPC client using insecure transport")
		connection.options = append(connection.options, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		tlsConfig, err := certsOpts.ClientTLSConfig()
		if err != nil {
			return nil, fmt.Errorf("loading client TLS config: %w", err)
		}
		connection.options = append(connection.options, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	}

	if prometheusOpts.Enabled() {
		metrics := grpc_prometheus.NewClientMetrics(
			grpc_prometheus.WithClientHandlingTimeHistogram(
				grpc_prometheus.WithHistogramBuckets(prometheusDefaultHistogramBuckets),
			),
		)
		connection.unaryInterceptors = append(connection.unaryInterceptors, metrics.UnaryClientInterceptor())
		connection.streamInterceptors = append(connection.streamInterceptors, metrics.StreamClientInterceptor())
	}
	connection.unaryInterceptors = append(connection.unaryInterceptors, interceptor.UnaryClientRetry())
	return connection, nil
}

// WithLogger sets the logger used by this connection.
func (c *Connection) WithLogger(logger *slog.Logger) *Connection {
	c.log = logger
	return c
}

// WithOptions adds dial options to this connection.
func (c *Connection) WithOptions(options ...grpc.DialOption) *Connection {
	c.options = append(c.options, options...)
	return c
}

// WithUnaryInterceptors adds interceptors to this connection.
func (c *Connection) WithUnaryInterceptors(interceptors ...grpc.UnaryClientInterceptor) *Connection {
	c.unaryInterceptors = append(c.unaryInterceptors, interceptors...)
	return c
}

// WithStreamInterceptors adds interceptors to this connection.
func (c *Connection) WithStreamInterceptors(interceptors ...grpc.StreamClientInterceptor) *Connection {
	c.streamInterceptors = append(c.streamInterceptors, interceptors...)
	return c
}

// Connect dials the gRPC connection.
func (c *Connection) Connect() error {
	if len(c.unaryInterceptors) > 0 {
		c.options = append(c.options, grpc.WithChainUnaryInterceptor(c.unaryInterceptors...))
	}
	if len(c.streamInterceptors) > 0 {
		c.options = append(c.options, grpc.WithChainStreamInterceptor(c.streamInterceptors...))
	}

	target := c.opts.target()
	connection, err := grpc.NewClient(target, c.options...)
	if err != nil {
		return fmt.Errorf("dialing grpc [%s]: %w", target, err)
	}
	c.log.Info("created gRPC client connection", "target", target)
	c.connection = connection
	return nil
}

// Get returns the underlying connection.
func (c *Connection) Get() *grpc.ClientConn { return c.connection }

// Close closes the underlying connection.
func (c *Connection) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}

// HealthCheck calls the `Check` method of the grpc server.
// Shaped as a health.Check so callers can plug it into their own health.
func (c *Connection) HealthCheck(ctx context.Context) error {
	healthClient := grpc_health_v1.NewHealthClient(c.connection)
	response, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	if err != nil {
		return err
	}
	if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("grpc server failed health check with status: %s", response.GetStatus())
	}
	return nil
}
