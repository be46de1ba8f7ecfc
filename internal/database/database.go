package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pageza/grocerly/backend/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database. Postgres connections go through
// lib/pq; sqlite is meant for local runs and tests.
func Open(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		logger.Info("connecting to database",
			zap.String("host", cfg.DBHost), zap.String("port", cfg.DBPort), zap.String("user", cfg.DBUser))
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.PostgresDSN()})
	case "sqlite":
		logger.Info("opening sqlite database", zap.String("path", cfg.SQLitePath))
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	logger.Info("successfully connected to database", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// NewGormLogger routes gorm's slow query and error logs through zap
func NewGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
