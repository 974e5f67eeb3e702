package controller

import (
	"net/http"
	"strconv"

	"sentinel-backend/internal/models"
	"sentinel-backend/internal/service"
	"sentinel-backend/internal/utils"
)

// StatsController serves aggregate statistics.
type StatsController struct {
	service *service.StatsService
}

func NewStatsController(service *service.StatsService) *StatsController {
	return &StatsController{service: service}
}

// Summary handles GET /stats/summary. Without an owner_id parameter the
// summary spans the full dataset.
func (c *StatsController) Summary(w http.ResponseWriter, r *http.Request) {
	var ownerID *uint
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInvalidFormat,
				"owner_id must be a positive integer", nil, http.StatusBadRequest))
			return
		}
		id := uint(parsed)
		ownerID = &id
	}

	summary, err := c.service.Summary(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}
