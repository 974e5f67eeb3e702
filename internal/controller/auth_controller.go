package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sentinel-backend/internal/middleware"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/service"
	"sentinel-backend/internal/utils"
)

// AuthController handles registration, sessions, profile management and
// device-token issuance.
type AuthController struct {
	service *service.AuthService
}

func NewAuthController(service *service.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Ping is a liveness check for the auth routes.
func (c *AuthController) Ping(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]bool{"alive": true})
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Invalid request body", nil, http.StatusBadRequest))
		return
	}

	user, err := c.service.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Invalid request body", nil, http.StatusBadRequest))
		return
	}

	token, user, err := c.service.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout handles POST /auth/logout. Sessions are stateless, so this is an
// acknowledgment for clients that want an explicit end-of-session call.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

// DeviceToken handles POST /auth/devices/{deviceId}/token.
func (c *AuthController) DeviceToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, models.NewAPIError(models.ErrorCodeUnauthorized,
			"Missing credentials", nil, http.StatusUnauthorized))
		return
	}

	deviceID := mux.Vars(r)["deviceId"]
	token, err := c.service.IssueDeviceToken(r.Context(), claims.UserID, deviceID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Device token issued", map[string]string{
		"token": token,
	})
}

// Me handles GET /auth/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	user, err := c.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", user)
}

// UpdateMe handles PATCH /auth/me.
func (c *AuthController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Invalid request body", nil, http.StatusBadRequest))
		return
	}

	if err := c.service.UpdateProfile(r.Context(), claims.UserID, req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Profile updated successfully", nil)
}

// DeleteMe handles DELETE /auth/me.
func (c *AuthController) DeleteMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	if err := c.service.DeleteAccount(r.Context(), claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "User deleted successfully", nil)
}

// Users handles GET /auth/users.
func (c *AuthController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "", users)
}

// ForgotPassword handles POST /auth/forgot-password.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Invalid request body", nil, http.StatusBadRequest))
		return
	}

	if err := c.service.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			"Invalid request body", nil, http.StatusBadRequest))
		return
	}

	if err := c.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password has been reset", nil)
}
