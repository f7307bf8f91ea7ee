package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/catalog"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/middleware"
	"github.com/hkbk-garden/plant-catalog/pkg/services"
	"github.com/hkbk-garden/plant-catalog/pkg/speech"
	"github.com/hkbk-garden/plant-catalog/ui"
)

// PlantListResponse is the JSON form of the listing page.
type PlantListResponse struct {
	Plants []catalog.Card `json:"plants"`
	Count  int            `json:"count"`
}

// PlantDetailResponse is the JSON form of the detail page.
type PlantDetailResponse struct {
	Plant     *catalog.DetailView `json:"plant"`
	Style     catalog.Style       `json:"style"`
	Utterance speech.Utterance    `json:"utterance"`
}

// PlantsHandler serves the catalog views as JSON for kiosk clients.
type PlantsHandler struct {
	service  services.PlantService
	renderer *catalog.Renderer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewPlantsHandler creates a new plants API handler.
func NewPlantsHandler(service services.PlantService, renderer *catalog.Renderer, cfg *config.Config, logger *zap.Logger) *PlantsHandler {
	return &PlantsHandler{
		service:  service,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterRoutes registers the plants API routes with the mux.
func (h *PlantsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/plants", h.List)
	mux.HandleFunc("GET /api/plants/{id}", h.Get)
}

// List handles GET /api/plants.
// An empty catalog is a 200 with no plants.
func (h *PlantsHandler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.service.ListPlants(r.Context())
	if err != nil {
		h.writeError(w, r, ui.PageListing, err)
		return
	}

	cards := h.renderer.Summaries(plants)
	if err := WriteJSON(w, http.StatusOK, PlantListResponse{Plants: cards, Count: len(cards)}); err != nil {
		h.logger.Error("Failed to encode plant list", zap.Error(err))
	}
}

// Get handles GET /api/plants/{id}.
func (h *PlantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	plant, err := h.service.GetPlant(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, ui.PageDetail, err)
		return
	}

	view := h.renderer.RenderFields(plant)
	response := PlantDetailResponse{
		Plant:     view,
		Style:     h.renderer.Style(),
		Utterance: utteranceFor(view, h.cfg.Speech),
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode plant detail", zap.Error(err))
	}
}

func (h *PlantsHandler) writeError(w http.ResponseWriter, r *http.Request, page string, err error) {
	kind := apperrors.Classify(err)
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	}
	if kind == apperrors.KindNotFound {
		h.logger.Info("Plant not found", fields...)
	} else {
		h.logger.Error("Plant API request failed", fields...)
	}

	if err := ErrorResponse(w, statusFor(kind), string(kind), messageFor(page, kind)); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
