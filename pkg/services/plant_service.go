package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
	"github.com/hkbk-garden/plant-catalog/pkg/repositories"
)

// PlantService is the query step of both pages: one Record Store round
// trip per call, with results mapped onto the catalog error kinds.
type PlantService interface {
	// ListPlants returns every plant. An empty catalog is not an error.
	ListPlants(ctx context.Context) ([]*models.Plant, error)

	// GetPlant returns one plant. It fails with apperrors.ErrMissingID for
	// a blank id and apperrors.ErrNotFound when the store has no match.
	GetPlant(ctx context.Context, id string) (*models.Plant, error)
}

type plantService struct {
	repo   repositories.PlantRepository
	logger *zap.Logger
}

// NewPlantService creates a new plant service.
func NewPlantService(repo repositories.PlantRepository, logger *zap.Logger) PlantService {
	return &plantService{
		repo:   repo,
		logger: logger.Named("plants"),
	}
}

var _ PlantService = (*plantService)(nil)

func (s *plantService) ListPlants(ctx context.Context) ([]*models.Plant, error) {
	plants, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list plants", zap.Error(err))
		return nil, fmt.Errorf("list plants: %w", err)
	}

	s.logger.Debug("Listed plants", zap.Int("count", len(plants)))
	return plants, nil
}

func (s *plantService) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.ErrMissingID
	}

	plant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get plant", zap.String("plant_id", id), zap.Error(err))
		return nil, fmt.Errorf("get plant %s: %w", id, err)
	}
	if plant == nil {
		s.logger.Info("Plant not found", zap.String("plant_id", id))
		return nil, fmt.Errorf("plant %s: %w", id, apperrors.ErrNotFound)
	}

	return plant, nil
}
