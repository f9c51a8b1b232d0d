package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/handler"
	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/records"
	"github.com/ogurasousui/dwrecords/internal/core/agency"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Dependencies はサーバーに登録するユースケースです。
type Dependencies struct {
	Agencies agency.UseCase
	Workers  worker.UseCase
	Clock    ports.Clock
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, logger *zap.Logger, deps Dependencies, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryLogging(logger))}, opts...)
	srv := grpc.NewServer(opts...)

	records.RegisterAgencyServer(srv, handler.NewAgencyGrpcHandler(deps.Agencies))
	records.RegisterWorkerServer(srv, handler.NewWorkerGrpcHandler(deps.Workers))
	records.RegisterEmploymentServer(srv, handler.NewEmploymentGrpcHandler(deps.Clock))

	hs := health.NewServer()
	for _, name := range []string{records.AgencyServiceName, records.WorkerServiceName, records.EmploymentServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(srv, hs)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     hs,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
