package repositories

import (
	"context"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/metrics"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// instrumentedRepository counts queries against the wrapped backend.
type instrumentedRepository struct {
	next    PlantRepository
	backend string
}

// Instrument wraps repo so every call increments
// plantcatalog_store_queries_total for the given backend name.
func Instrument(repo PlantRepository, backend string) PlantRepository {
	return &instrumentedRepository{next: repo, backend: backend}
}

func (r *instrumentedRepository) List(ctx context.Context) ([]*models.Plant, error) {
	plants, err := r.next.List(ctx)
	r.observe("list", err, len(plants) > 0)
	return plants, err
}

func (r *instrumentedRepository) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	plant, err := r.next.GetByID(ctx, id)
	r.observe("get", err, plant != nil)
	return plant, err
}

func (r *instrumentedRepository) observe(op string, err error, found bool) {
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = string(apperrors.Classify(err))
	case !found:
		outcome = metrics.OutcomeNotFound
	}
	metrics.StoreQueries.WithLabelValues(r.backend, op, outcome).Inc()
}
