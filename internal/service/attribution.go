package service

import (
	"net/http"

	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/models"
)

// ResolveOwner determines which account a reading write belongs to. Device
// tokens always self-attribute to their bound owner, so a compromised or
// misconfigured device cannot write into another tenant's data. For user
// tokens the token's account id wins; a body-supplied owner is honored only
// as a fallback and only on deployments that explicitly trust it.
func ResolveOwner(claims *auth.Claims, bodyOwner *uint, trustBodyOwner bool) (uint, error) {
	if claims != nil {
		switch claims.Kind {
		case auth.TokenKindDevice:
			return claims.UserID, nil
		case auth.TokenKindUser:
			if claims.UserID != 0 {
				return claims.UserID, nil
			}
		}
	}
	if trustBodyOwner && bodyOwner != nil && *bodyOwner != 0 {
		return *bodyOwner, nil
	}
	return 0, models.NewAPIError(
		models.ErrorCodeAttributionFailed,
		"missing owner for write",
		nil,
		http.StatusBadRequest,
	)
}
