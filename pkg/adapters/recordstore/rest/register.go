package rest

import (
	"context"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/adapters/recordstore"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/repositories"
)

func init() {
	recordstore.Register(recordstore.Registration{
		Info: recordstore.BackendInfo{
			Type:        config.BackendREST,
			DisplayName: "Record API",
			Description: "Hosted PostgREST-style API such as Supabase",
		},
		Factory: func(_ context.Context, cfg *config.Config, logger *zap.Logger) (repositories.PlantRepository, func(), error) {
			client, err := NewClient(Config{
				BaseURL:         cfg.RecordAPI.URL,
				APIKey:          cfg.RecordAPI.APIKey,
				Table:           cfg.RecordAPI.Table,
				Timeout:         cfg.RecordAPI.Timeout,
				BreakerFailures: cfg.RecordAPI.BreakerFailures,
				BreakerOpenFor:  cfg.RecordAPI.BreakerOpenFor,
			}, nil, logger)
			if err != nil {
				return nil, nil, err
			}
			return client, func() {}, nil
		},
	})
}
