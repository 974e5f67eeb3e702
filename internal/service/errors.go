package service

import (
	"log"
	"net/http"

	"sentinel-backend/internal/models"
)

// storeError logs the underlying persistence failure with its operation name
// and returns the client-safe form. Internal detail never reaches callers.
func storeError(op string, err error) models.APIError {
	log.Printf("store failure in %s: %v", op, err)
	return models.NewAPIError(
		models.ErrorCodeStoreError,
		"Persistence failure during "+op,
		nil,
		http.StatusInternalServerError,
	)
}
