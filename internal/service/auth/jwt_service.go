// Package auth validates the bearer tokens presented to the practice API.
// Token issuance (registration, login, refresh) belongs to the external auth
// service; this package only verifies signatures and extracts the owner ID.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/config"
	"github.com/mnemos/mnemos-api/internal/platform/logger"
)

// JWTService validates JWT access tokens.
type JWTService interface {
	// ValidateToken validates the provided access token string.
	// Returns the user ID the token was issued for, or ErrInvalidToken /
	// ErrExpiredToken when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey []byte
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration    // Allowed drift when validating time claims
}

// jwtCustomClaims defines the structure of the JWT claims we accept.
type jwtCustomClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a JWT validation service using HMAC-SHA256.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey: []byte(cfg.JWTSecret),
		timeFunc:   time.Now,
		clockSkew:  2 * time.Minute,
	}, nil
}

// ValidateToken implements the JWTService interface.
func (s *hmacJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return uuid.Nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return uuid.Nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed", "error", err)
			return uuid.Nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}
