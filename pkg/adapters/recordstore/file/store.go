package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// catalogFile is the on-disk layout:
//
//	plants:
//	  - id: 1
//	    common_name: Neem
type catalogFile struct {
	Plants []*models.Plant `yaml:"plants"`
}

// Store reads plant records from a YAML catalog file.
// The file is re-read on every call so edits show up without a restart.
type Store struct {
	path string
}

// NewStore returns a Store for path. The file is not opened until the
// first query.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns every plant in file order.
func (s *Store) List(ctx context.Context) ([]*models.Plant, error) {
	return s.load(ctx)
}

// GetByID returns the plant with the given id, or nil when none matches.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	plants, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range plants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *Store) load(ctx context.Context) ([]*models.Plant, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("catalog read cancelled: %w: %w", apperrors.ErrStore, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w: %w", s.path, apperrors.ErrStore, err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w: %w", s.path, apperrors.ErrStore, err)
	}

	plants := doc.Plants[:0]
	for _, p := range doc.Plants {
		if p != nil {
			plants = append(plants, p)
		}
	}
	return plants, nil
}
