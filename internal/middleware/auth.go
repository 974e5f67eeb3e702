// Package middleware verifies bearer credentials before any handler or
// store access runs.
package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticator wraps handlers with token verification.
type Authenticator struct {
	tokens *auth.TokenService
}

func NewAuthenticator(tokens *auth.TokenService) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// RequireToken accepts either token kind and attaches the verified claims to
// the request context.
func (a *Authenticator) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, apiErr := a.verify(r)
		if apiErr != nil {
			utils.RespondWithError(w, *apiErr)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireUserToken additionally rejects device tokens: a device credential
// never authorizes account management.
func (a *Authenticator) RequireUserToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, apiErr := a.verify(r)
		if apiErr != nil {
			utils.RespondWithError(w, *apiErr)
			return
		}
		if claims.Kind != auth.TokenKindUser {
			log.Printf("device token %s rejected for account operation %s", claims.DeviceID, r.URL.Path)
			utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeForbidden,
				"Device tokens cannot access account operations", nil, http.StatusForbidden))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func (a *Authenticator) verify(r *http.Request) (*auth.Claims, *models.APIError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		apiErr := models.NewAPIError(models.ErrorCodeUnauthorized,
			"Authorization header missing", nil, http.StatusUnauthorized)
		return nil, &apiErr
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		apiErr := models.NewAPIError(models.ErrorCodeUnauthorized,
			"Invalid token format", nil, http.StatusUnauthorized)
		return nil, &apiErr
	}

	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		code := models.ErrorCodeInvalidToken
		message := "Invalid token"
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			code = models.ErrorCodeTokenExpired
			message = "Token has expired"
		case errors.Is(err, auth.ErrTokenMalformed):
			code = models.ErrorCodeTokenMalformed
			message = "Token is missing required claims"
		}
		apiErr := models.NewAPIError(code, message, nil, http.StatusUnauthorized)
		return nil, &apiErr
	}
	return claims, nil
}

// WithClaims returns a context carrying the verified claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the claims attached by the authenticator.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
