package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ogurasousui/dwrecords/internal/adapters/repository/postgres"
	"github.com/ogurasousui/dwrecords/internal/cli"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"github.com/ogurasousui/dwrecords/internal/platform/config"
	pg "github.com/ogurasousui/dwrecords/internal/platform/db/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Clock:        ports.LocalClock{},
		OpenReviewer: openReviewer,
	}

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openReviewer(ctx context.Context, configPath string) (cli.ProbationReviewer, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	svc := worker.NewService(postgres.NewWorkerRepository(pool), ports.LocalClock{}, pg.NewTransactionManager(pool))
	return svc, pool.Close, nil
}
