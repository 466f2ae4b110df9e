package grpc

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	prom "github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"

	"github.com/recordstore-io/recordstore/certs"
	"github.com/recordstore-io/recordstore/grpc/interceptor"
	"github.com/recordstore-io/recordstore/health"
	"github.com/recordstore-io/recordstore/prometheus"
)

const (
	// MaximumMessageSize is the maximum message size for the server (20 MB).
	MaximumMessageSize         = 20 * 1024 * 1024
	gracefulStopTimeoutSeconds = 30
)

var (
	prometheusDefaultHistogramBuckets = []float64{
		0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9, 20, 30, 60, 90, 120,
	}

	serverKeepAliveEnforcementPolicy = keepalive.EnforcementPolicy{
		MinTime:             5 * time.Second, // If a client pings more than once every 5 seconds, terminate the connection
		PermitWithoutStream: true,            // Allow pings even when there are no active streams
	}

	serverKeepAliveParameters = keepalive.ServerParameters{
		MaxConnectionIdle: 15 * time.Second, // If a client is idle for 15 seconds, send a GOAWAY.
		Time:              5 * time.Second,  // Ping the client if it is idle for 5 seconds to ensure the connection is still active.
		Timeout:           1 * time.Second,  // Wait 1 second for the ping ack before assuming the connection is dead.
	}
)

// Server is a gRPC server.
type Server struct {
	opts                    *Opts
	prometheusOpts          *prometheus.Opts
	log                     *slog.Logger
	register                func(*Server)
	Raw                     *grpc.Server
	prometheusServerMetrics *grpc_prometheus.ServerMetrics

	healthCheck         health.Check
	healthCheckErr      error
	healthCheckErrMutex sync.RWMutex

	unaryInterceptors  []grpc.UnaryServerInterceptor
	streamInterceptors []grpc.StreamServerInterceptor
	options            []grpc.ServerOption
}

// NewServer creates and returns a new Server. The register callback is
// invoked once the underlying grpc.Server exists, and is where services
// should register themselves.
func NewServer(opts *Opts, certsOpts *certs.Opts, prometheusOpts *prometheus.Opts, register func(*Server)) (*Server, error) {
	server := &Server{
		opts:           opts,
		prometheusOpts: prometheusOpts,
		log:            slog.Default(),
		register:       register,
	}

	// Default options.
	server.options = append(server.options,
		grpc.MaxRecvMsgSize(MaximumMessageSize),
		grpc.MaxSendMsgSize(MaximumMessageSize),
		grpc.KeepaliveEnforcementPolicy(serverKeepAliveEnforcementPolicy),
		grpc.KeepaliveParams(serverKeepAliveParameters),
	)
	if !opts.DisableTLS {
		tlsConfig, err := certsOpts.ServerTLSConfig()
		if err != nil {
			return nil, err
		}
		server.options = append(server.options, grpc.Creds(credentials.NewTLS(tlsConfig)))
	} else {
		server.log.Warn("starting gRPC server without TLS")
	}

	// Prometheus first so it observes the full handling time.
	if prometheusOpts.Enabled() {
		metrics := grpc_prometheus.NewServerMetrics(
			grpc_prometheus.WithServerHandlingTimeHistogram(
				grpc_prometheus.WithHistogramBuckets(prometheusDefaultHistogramBuckets),
			),
		)
		server.prometheusServerMetrics = metrics
		server.unaryInterceptors = append(server.unaryInterceptors, metrics.UnaryServerInterceptor())
		server.streamInterceptors = append(server.streamInterceptors, metrics.StreamServerInterceptor())
	}
	// Call-id tagging, so the logging interceptor and any handler logs share an id.
	server.unaryInterceptors = append(server.unaryInterceptors, interceptor.UnaryServerCallID())
	server.streamInterceptors = append(server.streamInterceptors, interceptor.StreamServerCallID())
	// Logging interceptor.
	server.unaryInterceptors = append(server.unaryInterceptors, interceptor.UnaryServerLogging(server.log))
	server.streamInterceptors = append(server.streamInterceptors, interceptor.StreamServerLogging(server.log))
	// Panic interceptor.
	server.unaryInterceptors = append(server.unaryInterceptors, grpc_recovery.UnaryServerInterceptor())
	server.streamInterceptors = append(server.streamInterceptors, grpc_recovery.StreamServerInterceptor())
	return server, nil
}

// WithLogger sets the logger used by the server and its interceptors.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.log = logger
	return s
}

// WithHealthCheck adds grpc health check capabilities to the server.
func (s *Server) WithHealthCheck(healthCheck health.Check) *Server {
	s.healthCheck = healthCheck
	return s
}

// WithOptions adds options to this gRPC server.
func (s *Server) WithOptions(options ...grpc.ServerOption) *Server {
	s.options = append(s.options, options...)
	return s
}

// WithUnaryInterceptors adds interceptors to this gRPC server, after the defaults.
func (s *Server) WithUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) *Server {
	s.unaryInterceptors = append(s.unaryInterceptors, interceptors...)
	return s
}

// WithStreamInterceptors adds interceptors to this gRPC server, after the defaults.
func (s *Server) WithStreamInterceptors(interceptors ...grpc.StreamServerInterceptor) *Server {
	s.streamInterceptors = append(s.streamInterceptors, interceptors...)
	return s
}

func (s *Server) gracefulStop(server *grpc.Server) {
	ch := make(chan struct{})
	go func() {
		s.log.Info("attempting to gracefully stop server", "grace_period_seconds", gracefulStopTimeoutSeconds)
		server.GracefulStop()
		s.log.Info("server stopped")
		ch <- struct{}{}
	}()
	select {
	case <-time.After(time.Duration(gracefulStopTimeoutSeconds) * time.Second):
		s.log.Info("grace period exhausted, stopping server")
		server.Stop()
	case <-ch:
	}
}

// Serve instantiates the gRPC server and blocks until it stops.
func (s *Server) Serve(ctx context.Context) error {
	s.options = append(s.options,
		grpc.ChainUnaryInterceptor(s.unaryInterceptors...),
		grpc.ChainStreamInterceptor(s.streamInterceptors...),
	)

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(s.opts.Port))
	if err != nil {
		return err
	}
	defer listener.Close()
	s.log.Info("serving gRPC", "port", s.opts.Port)

	s.Raw = grpc.NewServer(s.options...)
	s.register(s)
	if s.healthCheck != nil {
		go s.assertHealthPeriodically(ctx)
		grpc_health_v1.RegisterHealthServer(s.Raw, s)
	}
	go handleSignals(s.log, func() { s.gracefulStop(s.Raw) }, s.Raw.Stop)
	if s.prometheusOpts.Enabled() {
		s.prometheusServerMetrics.InitializeMetrics(s.Raw)
		prom.DefaultRegisterer.MustRegister(s.prometheusServerMetrics)
	}
	return s.Raw.Serve(listener)
}

func (s *Server) assertHealthPeriodically(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := s.healthCheck(ctx)
			s.healthCheckErrMutex.Lock()
			s.healthCheckErr = err
			s.healthCheckErrMutex.Unlock()
		}
	}
}

// Check implements the grpc health v1 interface.
func (s *Server) Check(ctx context.Context, in *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	s.healthCheckErrMutex.RLock()
	defer s.healthCheckErrMutex.RUnlock()

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if s.healthCheckErr != nil {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return &grpc_health_v1.HealthCheckResponse{Status: status}, nil
}

// Watch implements the grpc health v1 interface.
func (s *Server) Watch(in *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	return status.Errorf(codes.Unimplemented, "method Watch not implemented")
}

// List implements the grpc health v1 interface.
func (s *Server) List(ctx context.Context, in *grpc_health_v1.HealthListRequest) (*grpc_health_v1.HealthListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method List not implemented")
}
