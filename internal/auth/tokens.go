package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"sentinel-backend/internal/models"
)

// TokenKind discriminates the two credential types. Every issued token
// carries it and every decode checks it, so a device token can never pass
// where a user token is required.
type TokenKind string

const (
	TokenKindUser   TokenKind = "user"
	TokenKindDevice TokenKind = "device"
)

const issuer = "sentinel-backend"

var (
	ErrTokenInvalid   = errors.New("token signature or structure is invalid")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is missing required claims")
)

// Claims is the signed payload for both token kinds. User tokens carry
// UserID and Username with a bounded lifetime; device tokens carry DeviceID
// plus the owning UserID and never expire.
type Claims struct {
	Kind     TokenKind `json:"kind"`
	UserID   uint      `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	DeviceID string    `json:"device_id,omitempty"`
	jwt.StandardClaims
}

// TokenService signs and verifies credentials with a process-wide HS256
// secret loaded once at startup.
type TokenService struct {
	secret  []byte
	userTTL time.Duration
}

func NewTokenService(secret string, userTTL time.Duration) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		userTTL: userTTL,
	}
}

// IssueUserToken creates a session token for a registered account.
func (s *TokenService) IssueUserToken(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Kind:     TokenKindUser,
		UserID:   user.ID,
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.userTTL).Unix(),
			Issuer:    issuer,
		},
	}

	return s.sign(claims)
}

// IssueDeviceToken creates a permanent credential bound to the device's
// owner. No ExpiresAt is set.
func (s *TokenService) IssueDeviceToken(device models.Device) (string, error) {
	claims := &Claims{
		Kind:     TokenKindDevice,
		DeviceID: device.DeviceID,
		UserID:   device.UserID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: time.Now().Unix(),
			Issuer:   issuer,
		},
	}

	return s.sign(claims)
}

func (s *TokenService) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry, then enforces that the claims
// required for the token's kind are present.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	switch claims.Kind {
	case TokenKindUser:
		if claims.UserID == 0 || claims.Username == "" {
			return nil, ErrTokenMalformed
		}
	case TokenKindDevice:
		if claims.DeviceID == "" || claims.UserID == 0 {
			return nil, ErrTokenMalformed
		}
	default:
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
