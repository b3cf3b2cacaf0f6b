// Package grpc runs the backend's gRPC health service. Clients use it to
// tell whether the backend is reachable before making REST calls.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/hifi-israel/sikacare/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "sikacare.Backend"

const defaultCheckInterval = 10 * time.Second

type GRPCServer struct {
	address  string
	logger   logging.Logger
	health   *health.Server
	check    func(context.Context) error
	interval time.Duration
}

// NewGRPCServer builds the server. check, when not nil, is polled and
// decides between SERVING and NOT_SERVING.
func NewGRPCServer(a string, l logging.Logger, check func(context.Context) error) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		check:    check,
		interval: defaultCheckInterval,
	}
}

func (s *GRPCServer) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// probe runs check once and updates the serving status.
func (s *GRPCServer) probe(ctx context.Context) {
	if s.check == nil {
		s.setStatus(healthpb.HealthCheckResponse_SERVING)
		return
	}
	if err := s.check(ctx); err != nil {
		s.logger.Warn(ctx, "readiness check failed", "error", err)
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	if s.check != nil {
		go s.watch(ctx)
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		// all statuses go NOT_SERVING and stay there
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
