package file

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/repositories"
)

func init() {
	recordstore.Register(recordstore.Registration{
		Info: recordstore.BackendInfo{
			Type:        config.BackendFile,
			DisplayName: "YAML catalog file",
			Description: "Read-only local catalog for demos and offline kiosks",
		},
		Factory: func(_ context.Context, cfg *config.Config, logger *zap.Logger) (repositories.PlantRepository, func(), error) {
			if _, err := os.Stat(cfg.Store.CatalogFile); err != nil {
				return nil, nil, fmt.Errorf("catalog file: %w", err)
			}
			logger.Info("Serving plants from catalog file", zap.String("path", cfg.Store.CatalogFile))
			return NewStore(cfg.Store.CatalogFile), func() {}, nil
		},
	})
}
