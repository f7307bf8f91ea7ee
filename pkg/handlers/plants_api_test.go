package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/catalog"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

func newPlantsMux(svc *mockPlantService) *http.ServeMux {
	mux := http.NewServeMux()
	NewPlantsHandler(svc, testRenderer(catalog.StyleNarrative), testConfig(), zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestPlantsHandler_List(t *testing.T) {
	mux := newPlantsMux(&mockPlantService{plants: []*models.Plant{neemPlant(), nil}})

	rec := get(mux, "/api/plants")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response PlantListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Plants, 1)
	assert.Equal(t, "Neem", response.Plants[0].CommonName)
	assert.Equal(t, "https://img.example/a.jpg", response.Plants[0].Image)
	assert.Equal(t, "/plant?id=7", response.Plants[0].DetailURL)
}

func TestPlantsHandler_List_Empty(t *testing.T) {
	rec := get(newPlantsMux(&mockPlantService{}), "/api/plants")
	require.Equal(t, http.StatusOK, rec.Code)

	var response PlantListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Zero(t, response.Count)
	assert.NotNil(t, response.Plants, "empty list encodes as [] not null")
}

func TestPlantsHandler_List_StoreError(t *testing.T) {
	rec := get(newPlantsMux(&mockPlantService{listErr: fmt.Errorf("x: %w", apperrors.ErrStore)}), "/api/plants")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "store_error", response["error"])
	assert.Equal(t, "Error loading plants.", response["message"])
}

func TestPlantsHandler_Get(t *testing.T) {
	rec := get(newPlantsMux(&mockPlantService{plants: []*models.Plant{neemPlant()}}), "/api/plants/7")
	require.Equal(t, http.StatusOK, rec.Code)

	var response PlantDetailResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	require.NotNil(t, response.Plant)
	assert.Equal(t, "7", response.Plant.ID)
	assert.Equal(t, catalog.StyleNarrative, response.Style)
	assert.Equal(t, 9, response.Plant.Age.Years)
	require.Len(t, response.Plant.Rows, 12)
	assert.Equal(t, catalog.LabelImages, response.Plant.Rows[11].Label)
	assert.Len(t, response.Plant.Rows[11].Images, 2)

	assert.Equal(t, "en-IN", response.Utterance.Locale)
	assert.Equal(t, 1.0, response.Utterance.Rate)
	assert.Contains(t, response.Utterance.Text, "Hi! I’m Neem")
	assert.Contains(t, response.Utterance.Text, "I am around 9 years old.")
}

func TestPlantsHandler_Get_NotFound(t *testing.T) {
	rec := get(newPlantsMux(&mockPlantService{}), "/api/plants/999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "not_found", response["error"])
	assert.Equal(t, "Plant not found.", response["message"])
}

func TestPlantsHandler_Get_StoreError(t *testing.T) {
	rec := get(newPlantsMux(&mockPlantService{getErr: fmt.Errorf("x: %w", apperrors.ErrStore)}), "/api/plants/7")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
