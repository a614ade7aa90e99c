package services

import (
	"context"
	"testing"
	"time"

	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/auth"
)

type memUserStore struct {
	users map[string]*models.User
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	s.users[user.Username] = user
	return nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *auth.JWTService) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store := &memUserStore{users: map[string]*models.User{
		"admin": {ID: "user-1", Username: "admin", Password: hash, Role: models.RoleAdmin},
	}}
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "sigesco.test",
	})
	return NewAuthService(store, jwtSvc), jwtSvc
}

func TestLogin(t *testing.T) {
	svc, jwtSvc := newAuthFixture(t)

	token, user, err := svc.Login(context.Background(), "admin", "s3cret-pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" || user.Role != models.RoleAdmin {
		t.Errorf("user = %+v", user)
	}

	claims, err := jwtSvc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("claims.UserID = %q", claims.UserID)
	}
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	// Wrong password and unknown user must be indistinguishable.
	if _, _, err := svc.Login(ctx, "admin", "wrong"); !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "s3cret-pw"); !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Errorf("unknown user: got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("empty credentials: got %v", err)
	}
}
