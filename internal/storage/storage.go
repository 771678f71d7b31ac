package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/profilecard/internal/config"
	"github.com/polkiloo/profilecard/internal/domain/repository"
	"github.com/polkiloo/profilecard/internal/storage/mongodb"
	"github.com/polkiloo/profilecard/internal/storage/postgres"
)

// Open connects to the user store selected by the database URI scheme.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	driver, err := cfg.StorageDriver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverMongo:
		return mongodb.New(ctx, cfg.DatabaseURI, cfg.DatabaseName, logger)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURI, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
