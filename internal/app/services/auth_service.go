package services

import (
	"context"
	"strings"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/auth"
)

// AuthService authenticates staff accounts. Session issuance beyond a single
// access token (refresh, password reset) is out of scope.
type AuthService struct {
	users UserStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies credentials and returns a signed access token plus the
// authenticated user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", nil, apperrors.New(apperrors.KindValidation, "username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			// Same answer as a bad password; do not leak which part failed
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
