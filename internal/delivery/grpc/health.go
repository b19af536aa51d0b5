package grpc

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

// ServiceName is the health-checked service name besides the overall "" entry.
const ServiceName = "pos.POS"

// Server exposes grpc.health.v1 and reflection. It reports NOT_SERVING until
// SetServing(true) is called.
type Server struct {
	srv    *grpclib.Server
	health *health.Server
	log    *logrus.Logger
}

func NewServer(logger *logrus.Logger) *Server {
	srv := grpclib.NewServer(grpclib.UnaryInterceptor(loggingInterceptor(logger)))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	logger.Info("gRPC health and reflection services registered")

	s := &Server{srv: srv, health: hs, log: logger}
	s.SetServing(false)
	return s
}

func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	s.log.Infof("gRPC Handler: Health status set to %s", st)
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Infof("gRPC server listening on %s", lis.Addr())
	if err := s.srv.Serve(lis); err != nil && err != grpclib.ErrServerStopped {
		return err
	}
	return nil
}

// GracefulStop marks the service NOT_SERVING and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
	s.log.Info("gRPC server gracefully stopped.")
}

func loggingInterceptor(logger *logrus.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if m, ok := req.(proto.Message); ok {
			entry = entry.WithField("request_bytes", proto.Size(m))
		}
		if err != nil {
			entry.Warnf("gRPC Handler: call failed: %v", err)
		} else {
			entry.Debug("gRPC Handler: call completed")
		}
		return resp, err
	}
}
