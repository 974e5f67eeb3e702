package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"sentinel-backend/internal/middleware"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/service"
	"sentinel-backend/internal/utils"
	"sentinel-backend/internal/validation"
)

// DataController handles sensor data submission and retrieval.
type DataController struct {
	service *service.DataService
}

func NewDataController(service *service.DataService) *DataController {
	return &DataController{service: service}
}

// Ingest handles POST /api/data. Bodies in the first-generation nested
// schema are adapted to the flat one before validation.
func (c *DataController) Ingest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Error reading request body", nil, http.StatusBadRequest))
		return
	}
	defer r.Body.Close()

	payload, apiErr := decodePayload(body)
	if apiErr != nil {
		utils.RespondWithError(w, *apiErr)
		return
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())
	reading, err := c.service.Ingest(r.Context(), claims, payload)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Data saved successfully", reading)
}

// decodePayload tries the flat schema first, then the legacy nested one.
func decodePayload(body []byte) (models.SensorPayload, *models.APIError) {
	var payload models.SensorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload, nil
	}

	var legacy models.LegacySensorPayload
	if err := json.Unmarshal(body, &legacy); err == nil && legacy.Sensors != nil {
		return validation.AdaptLegacy(legacy), nil
	}

	apiErr := models.NewAPIError(models.ErrorCodeBadRequest,
		"Invalid JSON format", nil, http.StatusBadRequest)
	return models.SensorPayload{}, &apiErr
}

// Latest handles GET /api/data/latest.
func (c *DataController) Latest(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	readings, err := c.service.Latest(r.Context(), claims)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, readings)
}

// History handles GET /api/data/{device_id}. Optional start and end query
// parameters are RFC 3339 timestamps; both omitted means the last 24 hours.
func (c *DataController) History(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	deviceID := mux.Vars(r)["device_id"]

	start, apiErr := parseTimeParam(r, "start")
	if apiErr != nil {
		utils.RespondWithError(w, *apiErr)
		return
	}
	end, apiErr := parseTimeParam(r, "end")
	if apiErr != nil {
		utils.RespondWithError(w, *apiErr)
		return
	}

	readings, err := c.service.History(r.Context(), claims, deviceID, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, readings)
}

func parseTimeParam(r *http.Request, name string) (*time.Time, *models.APIError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat,
			"Invalid "+name+" timestamp. Expected ISO 8601.", nil, http.StatusBadRequest)
		return nil, &apiErr
	}
	return &parsed, nil
}

// Alerts handles GET /api/alerts.
func (c *DataController) Alerts(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	alerts, err := c.service.Alerts(r.Context(), claims)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, alerts)
}
