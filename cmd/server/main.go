package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/dwrecords/internal/adapters/repository/postgres"
	"github.com/ogurasousui/dwrecords/internal/core/agency"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"github.com/ogurasousui/dwrecords/internal/platform/config"
	pg "github.com/ogurasousui/dwrecords/internal/platform/db/postgres"
	"github.com/ogurasousui/dwrecords/internal/platform/logging"
	"github.com/ogurasousui/dwrecords/internal/platform/server"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := config.PathFromEnv()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	clock := ports.SystemClock{}
	txManager := pg.NewTransactionManager(dbPool)

	agencySvc := agency.NewService(postgres.NewAgencyRepository(dbPool), clock, txManager)
	workerSvc := worker.NewService(postgres.NewWorkerRepository(dbPool), clock, txManager)

	grpcServer := server.New(cfg.Server.ListenAddr, logger, server.Dependencies{
		Agencies: agencySvc,
		Workers:  workerSvc,
		Clock:    clock,
	})

	logger.Info("starting gRPC server",
		zap.String("config", cfgPath),
		zap.String("listen_addr", cfg.Server.ListenAddr),
		zap.String("database", cfg.Database.Name))

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}

	logger.Info("gRPC server stopped")
}
