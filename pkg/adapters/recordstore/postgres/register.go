package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/database"
	"github.com/hkbk-garden/plant-catalog/pkg/logging"
	"github.com/hkbk-garden/plant-catalog/pkg/repositories"
)

func init() {
	recordstore.Register(recordstore.Registration{
		Info: recordstore.BackendInfo{
			Type:        config.BackendPostgres,
			DisplayName: "PostgreSQL",
			Description: "Plants table in PostgreSQL 12+, schema managed by embedded migrations",
		},
		Factory: Open,
	})
}

// Open connects to PostgreSQL, applies pending migrations when enabled
// and returns the plants repository.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.PlantRepository, func(), error) {
	connStr := cfg.Database.ConnectionString()

	if cfg.Database.RunMigrations {
		if err := migrate(connStr, logger); err != nil {
			return nil, nil, err
		}
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:      connStr,
		Settings: cfg.Database,
	})
	if err != nil {
		logger.Error("Failed to connect to database",
			zap.String("connection", logging.SanitizeConnectionString(connStr)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, nil, err
	}

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	return repositories.NewPlantRepository(db.Pool), db.Close, nil
}

func migrate(connStr string, logger *zap.Logger) error {
	sqlDB, err := database.OpenSQL(connStr)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("failed to migrate plants schema: %w", err)
	}
	return nil
}
