package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/catalog"
	"github.com/hkbk-garden/plant-catalog/pkg/config"
	"github.com/hkbk-garden/plant-catalog/pkg/metrics"
	"github.com/hkbk-garden/plant-catalog/pkg/middleware"
	"github.com/hkbk-garden/plant-catalog/pkg/services"
	"github.com/hkbk-garden/plant-catalog/pkg/speech"
	"github.com/hkbk-garden/plant-catalog/ui"
)

// toggleLabels are the read-aloud button captions, also handed to the
// page script.
type toggleLabels struct {
	Idle     string `json:"idle"`
	Speaking string `json:"speaking"`
}

var readAloudLabels = toggleLabels{Idle: speech.LabelIdle, Speaking: speech.LabelSpeaking}

// pageData is the template context shared by both pages.
type pageData struct {
	Title     string
	SiteTitle string
	Message   *pageMessage
	Cards     []catalog.Card
	Detail    *catalog.DetailView
	Utterance speech.Utterance
	Labels    toggleLabels
}

// PagesHandler serves the server-rendered listing and detail pages.
// Each page load is one query, then a branch on the result, then rendering.
type PagesHandler struct {
	service  services.PlantService
	renderer *catalog.Renderer
	pages    *ui.Pages
	cfg      *config.Config
	logger   *zap.Logger
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(service services.PlantService, renderer *catalog.Renderer, pages *ui.Pages, cfg *config.Config, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{
		service:  service,
		renderer: renderer,
		pages:    pages,
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterRoutes registers the page routes with the mux.
func (h *PagesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Listing)
	mux.HandleFunc("GET /plant", h.Detail)
}

// Listing handles GET / with one card per plant.
func (h *PagesHandler) Listing(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPage(w, r, ui.PageListing)

	plants, err := h.service.ListPlants(r.Context())
	if err != nil {
		h.renderError(w, r, ui.PageListing, err)
		return
	}

	data := h.newPageData(h.cfg.Display.Title)
	if len(plants) == 0 {
		data.Message = &pageMessage{Text: messageFor(ui.PageListing, apperrors.KindNotFound)}
		h.render(w, r, ui.PageListing, http.StatusOK, data, metrics.OutcomeNotFound)
		return
	}

	data.Cards = h.renderer.Summaries(plants)
	h.render(w, r, ui.PageListing, http.StatusOK, data, metrics.OutcomeOK)
}

// Detail handles GET /plant?id=<id>.
func (h *PagesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPage(w, r, ui.PageDetail)

	plant, err := h.service.GetPlant(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.renderError(w, r, ui.PageDetail, err)
		return
	}

	view := h.renderer.RenderFields(plant)
	data := h.newPageData(fmt.Sprintf("%s | %s", view.Name, h.cfg.Display.Title))
	data.Detail = view
	data.Utterance = utteranceFor(view, h.cfg.Speech)
	h.render(w, r, ui.PageDetail, http.StatusOK, data, metrics.OutcomeOK)
}

func (h *PagesHandler) newPageData(title string) *pageData {
	return &pageData{
		Title:     title,
		SiteTitle: h.cfg.Display.Title,
		Labels:    readAloudLabels,
	}
}

// renderError logs err and shows the page's message for its kind.
func (h *PagesHandler) renderError(w http.ResponseWriter, r *http.Request, page string, err error) {
	kind := apperrors.Classify(err)
	h.logFailure(r, page, kind, err)

	data := h.newPageData(h.cfg.Display.Title)
	data.Message = &pageMessage{Text: messageFor(page, kind), Error: true}
	h.render(w, r, page, statusFor(kind), data, string(kind))
}

// render executes the page into a buffer so a template failure can still
// be replaced by the unexpected-error message.
func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, page string, status int, data *pageData, outcome string) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page, data); err != nil {
		h.logFailure(r, page, apperrors.KindUnexpected, fmt.Errorf("render %s: %w", page, err))

		fallback := h.newPageData(h.cfg.Display.Title)
		fallback.Message = &pageMessage{Text: messageFor(page, apperrors.KindUnexpected), Error: true}
		buf.Reset()
		if err := h.pages.Render(&buf, page, fallback); err != nil {
			metrics.PageLoads.WithLabelValues(page, metrics.OutcomeUnexpected).Inc()
			http.Error(w, messageFor(page, apperrors.KindUnexpected), http.StatusInternalServerError)
			return
		}
		status = http.StatusInternalServerError
		outcome = metrics.OutcomeUnexpected
	}

	metrics.PageLoads.WithLabelValues(page, outcome).Inc()
	if err := WriteHTML(w, status, &buf); err != nil {
		h.logger.Debug("Failed to write page", zap.String("page", page), zap.Error(err))
	}
}

// recoverPage turns a panic during query or transform into the
// unexpected-error message for the page.
func (h *PagesHandler) recoverPage(w http.ResponseWriter, r *http.Request, page string) {
	if rec := recover(); rec != nil {
		h.renderError(w, r, page, fmt.Errorf("panic: %v", rec))
	}
}

func (h *PagesHandler) logFailure(r *http.Request, page string, kind apperrors.Kind, err error) {
	fields := []zap.Field{
		zap.String("page", page),
		zap.String("kind", string(kind)),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	}
	if id := r.URL.Query().Get("id"); id != "" {
		fields = append(fields, zap.String("plant_id", id))
	}

	switch kind {
	case apperrors.KindNotFound, apperrors.KindMissingID:
		h.logger.Info("Page rendered without a plant", fields...)
	default:
		h.logger.Error("Page failed to load", fields...)
	}
}

// utteranceFor builds the read-aloud utterance for a detail view.
func utteranceFor(view *catalog.DetailView, cfg config.SpeechConfig) speech.Utterance {
	return speech.Utterance{
		Text:   view.SpeechText(),
		Locale: cfg.Locale,
		Rate:   cfg.Rate,
	}
}
