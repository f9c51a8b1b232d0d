package main

import (
	"flag"
	"log"

	"github.com/ogurasousui/dwrecords/internal/platform/config"
	"github.com/ogurasousui/dwrecords/internal/platform/db/migration"
	"github.com/ogurasousui/dwrecords/internal/platform/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", migration.DefaultDir, "directory containing migration files")
	)
	flag.Parse()

	action, err := migration.ParseAction(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v (want up, down, drop, reset or version)", err)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = config.PathFromEnv()
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := migration.Run(action, *migrationsDir, cfg.Database.DSN(), logger); err != nil {
		logger.Fatal("migration failed", zap.String("action", string(action)), zap.Error(err))
	}

	logger.Info("migration completed", zap.String("action", string(action)), zap.String("dir", *migrationsDir))
}
