package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/grocerly/backend/config"
	"github.com/pageza/grocerly/backend/internal/database"
	"github.com/pageza/grocerly/backend/internal/logging"
)

func main() {
	drop := flag.Bool("drop", false, "Drop every table before migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if *drop {
		logger.Warn("dropping all tables")
		if err := db.Migrator().DropTable(database.Models()...); err != nil {
			logger.Fatal("failed to drop tables", zap.Error(err))
		}
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations applied", zap.Int("tables", len(database.Models())))
}
