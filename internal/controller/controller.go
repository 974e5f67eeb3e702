package controller

import (
	"net/http"

	"sentinel-backend/internal/models"
	"sentinel-backend/internal/utils"
)

// envelope is the response shape used by the auth routes.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	utils.RespondWithJSON(w, statusCode, envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// respondError maps service errors onto the wire. Anything that is not an
// APIError is an internal failure whose detail stays server-side.
func respondError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(models.APIError); ok {
		utils.RespondWithError(w, apiErr)
		return
	}
	utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInternalServerError,
		"Internal server error", nil, http.StatusInternalServerError))
}
