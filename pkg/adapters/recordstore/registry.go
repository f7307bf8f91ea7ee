package recordstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/repositories"
)

// BackendInfo describes a registered Record Store backend.
type BackendInfo struct {
	Type        string `json:"type"`         // "postgres", "rest", "file"
	DisplayName string `json:"display_name"` // "PostgreSQL"
	Description string `json:"description"`
}

// Factory opens a backend. The returned close function releases whatever
// the backend holds and is never nil on success.
type Factory func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.PlantRepository, func(), error)

// Registration contains info + factory for one backend.
type Registration struct {
	Info    BackendInfo
	Factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// Register is called by each backend's init() function.
func Register(reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// RegisteredBackends returns info for all registered backends, sorted by type.
func RegisteredBackends() []BackendInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]BackendInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// Open creates the backend selected by cfg.Store.Backend and wraps it with
// query metrics.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.PlantRepository, func(), error) {
	registryMu.RLock()
	reg, ok := registry[cfg.Store.Backend]
	registryMu.RUnlock()
	if !ok {
		var available []string
		for _, info := range RegisteredBackends() {
			available = append(available, info.Type)
		}
		return nil, nil, fmt.Errorf("unsupported store backend: %s (available: %s)",
			cfg.Store.Backend, strings.Join(available, ", "))
	}

	repo, closeFn, err := reg.Factory(ctx, cfg, logger.Named(cfg.Store.Backend))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}
	if closeFn == nil {
		closeFn = func() {}
	}

	logger.Info("Record store opened", zap.String("backend", reg.Info.DisplayName))
	return repositories.Instrument(repo, cfg.Store.Backend), closeFn, nil
}
