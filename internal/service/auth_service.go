package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/repository"
)

// ResetMailer delivers password-reset tokens out of band.
type ResetMailer interface {
	SendResetEmail(ctx context.Context, to, token string) error
}

// AuthService handles registration, login, profile management, password
// resets and device-token issuance.
type AuthService struct {
	users       repository.UserRepository
	devices     repository.DeviceRepository
	resetTokens repository.ResetTokenStore
	tokens      *auth.TokenService
	mailer      ResetMailer
	resetTTL    time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	devices repository.DeviceRepository,
	resetTokens repository.ResetTokenStore,
	tokens *auth.TokenService,
	mailer ResetMailer,
	resetTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:       users,
		devices:     devices,
		resetTokens: resetTokens,
		tokens:      tokens,
		mailer:      mailer,
		resetTTL:    resetTTL,
	}
}

// Register creates a new account when the username is free.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, models.NewAPIError(models.ErrorCodeValidationFailed,
			"All fields are required", nil, http.StatusBadRequest)
	}

	_, err := s.users.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, models.NewAPIError(models.ErrorCodeDuplicateResource,
			"User already exists", nil, http.StatusBadRequest)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("register", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, storeError("register", err)
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Email:    &req.Email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError("register", err)
	}
	return user, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if req.Username == "" || req.Password == "" {
		return "", nil, models.NewAPIError(models.ErrorCodeValidationFailed,
			"Username and password are required", nil, http.StatusBadRequest)
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !auth.CheckPassword(user.Password, req.Password)) {
		return "", nil, models.NewAPIError(models.ErrorCodeInvalidCredentials,
			"Invalid credentials", nil, http.StatusBadRequest)
	}
	if err != nil {
		return "", nil, storeError("login", err)
	}

	token, err := s.tokens.IssueUserToken(*user)
	if err != nil {
		return "", nil, storeError("login", err)
	}
	return token, user, nil
}

// IssueDeviceToken returns a permanent credential for the device. The device
// is created lazily, bound to the caller, on first request; once bound it is
// never reassigned, so a second account asking for the same identifier is
// rejected.
func (s *AuthService) IssueDeviceToken(ctx context.Context, ownerID uint, deviceID string) (string, error) {
	if deviceID == "" {
		return "", models.NewAPIError(models.ErrorCodeMissingParameter,
			"deviceId is required", nil, http.StatusBadRequest)
	}

	device, err := s.devices.FindByID(ctx, deviceID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		device = &models.Device{DeviceID: deviceID, UserID: ownerID}
		if err := s.devices.Create(ctx, device); err != nil {
			return "", storeError("issue device token", err)
		}
		log.Printf("Device %s registered to account %d", deviceID, ownerID)
	case err != nil:
		return "", storeError("issue device token", err)
	case device.UserID != ownerID:
		return "", models.NewAPIError(models.ErrorCodeForbidden,
			"Device is registered to another account", nil, http.StatusForbidden)
	}

	token, err := s.tokens.IssueDeviceToken(*device)
	if err != nil {
		return "", storeError("issue device token", err)
	}
	return token, nil
}

// GetProfile returns the account behind a verified user token.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewAPIError(models.ErrorCodeNotFound,
			"User not found", nil, http.StatusNotFound)
	}
	if err != nil {
		return nil, storeError("get profile", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewAPIError(models.ErrorCodeNotFound,
			"User not found", nil, http.StatusNotFound)
	}
	if err != nil {
		return storeError("update profile", err)
	}

	if req.Email != nil {
		user.Email = req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Workplace != nil {
		user.Workplace = req.Workplace
	}
	if req.JobTitle != nil {
		user.JobTitle = req.JobTitle
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return storeError("update profile", err)
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return storeError("update profile", err)
	}
	return nil
}

// DeleteAccount removes the account and its device bindings. Stored readings
// are orphaned, not deleted: the reading store is append-only and shared
// history keeps its value for fleet statistics.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NewAPIError(models.ErrorCodeNotFound,
				"User not found", nil, http.StatusNotFound)
		}
		return storeError("delete account", err)
	}
	if err := s.devices.DeleteByOwner(ctx, userID); err != nil {
		return storeError("delete account", err)
	}
	return nil
}

// ListUsers returns every account. Password hashes never serialize.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

// ForgotPassword issues a single-use reset token and mails it. Mail delivery
// is fire-and-forget: a relay failure is logged but does not roll back the
// token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return models.NewAPIError(models.ErrorCodeMissingParameter,
			"email is required", nil, http.StatusBadRequest)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewAPIError(models.ErrorCodeNotFound,
			"No user with that email", nil, http.StatusNotFound)
	}
	if err != nil {
		return storeError("forgot password", err)
	}

	token := uuid.NewString()
	if err := s.resetTokens.Save(ctx, token, user.ID, s.resetTTL); err != nil {
		return storeError("forgot password", err)
	}

	if s.mailer != nil {
		go func(to, token string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.mailer.SendResetEmail(sendCtx, to, token); err != nil {
				log.Printf("reset email to %s failed: %v", to, err)
			}
		}(email, token)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return models.NewAPIError(models.ErrorCodeValidationFailed,
			"Token and new password are required", nil, http.StatusBadRequest)
	}

	userID, err := s.resetTokens.Consume(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewAPIError(models.ErrorCodeInvalidToken,
			"Invalid or expired token", nil, http.StatusBadRequest)
	}
	if err != nil {
		return storeError("reset password", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewAPIError(models.ErrorCodeNotFound,
			"User not found", nil, http.StatusNotFound)
	}
	if err != nil {
		return storeError("reset password", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return storeError("reset password", err)
	}
	user.Password = hash

	if err := s.users.Update(ctx, user); err != nil {
		return storeError("reset password", err)
	}
	return nil
}
