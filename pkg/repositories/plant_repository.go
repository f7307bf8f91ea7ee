package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// PlantRepository is the read-only Record Store contract.
type PlantRepository interface {
	// List returns every plant record.
	List(ctx context.Context) ([]*models.Plant, error)
	// GetByID returns the plant with the given id, or nil and no error
	// when nothing matches.
	GetByID(ctx context.Context, id string) (*models.Plant, error)
}

// Querier is the subset of pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// plantRepository implements PlantRepository using PostgreSQL.
type plantRepository struct {
	db Querier
}

// NewPlantRepository creates a PostgreSQL-backed plant repository.
func NewPlantRepository(db Querier) PlantRepository {
	return &plantRepository{db: db}
}

// plantColumns casts id and date to text so the model stays string based
// whatever the column types are.
const plantColumns = `
	id::text, common_name, scientific_name, category, date_of_planting::text,
	max_height, origin, water_requirement, seasonal_flowering, medicinal_value,
	quantitative_data, geo_location, additional_info, image_urls`

// List returns all plants ordered by common name.
func (r *plantRepository) List(ctx context.Context) ([]*models.Plant, error) {
	query := `SELECT ` + plantColumns + `
		FROM plants
		ORDER BY lower(common_name) NULLS LAST, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w: %w", apperrors.ErrStore, err)
	}
	defer rows.Close()

	var plants []*models.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w: %w", apperrors.ErrStore, err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plants: %w: %w", apperrors.ErrStore, err)
	}

	return plants, nil
}

// GetByID returns a single plant. The id is compared as text so integer
// and uuid keys both work.
func (r *plantRepository) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	query := `SELECT ` + plantColumns + `
		FROM plants
		WHERE id::text = $1`

	p, err := scanPlant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plant: %w: %w", apperrors.ErrStore, err)
	}
	return p, nil
}

func scanPlant(row pgx.Row) (*models.Plant, error) {
	var p models.Plant
	err := row.Scan(
		&p.ID,
		&p.CommonName,
		&p.ScientificName,
		&p.Category,
		&p.DateOfPlanting,
		&p.MaxHeight,
		&p.Origin,
		&p.WaterRequirement,
		&p.SeasonalFlowering,
		&p.MedicinalValue,
		&p.QuantitativeData,
		&p.GeoLocation,
		&p.AdditionalInfo,
		&p.ImageURLs,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
