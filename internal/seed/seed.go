package seed

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/app/repositories"
	"github.com/sigesco/sigesco/internal/pkg/apperrors"
	"github.com/sigesco/sigesco/internal/pkg/auth"
)

// CreateDefaultAdmin makes sure a staff admin account exists so a fresh
// deployment can log in. The password comes from SIGESCO_ADMIN_PASSWORD and
// is only used when the account is first created.
func CreateDefaultAdmin(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	const username = "admin"

	_, err := repos.Users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	password := os.Getenv("SIGESCO_ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("SIGESCO_ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: username,
		Password: hash,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := repos.Users.Create(ctx, user); err != nil {
		return err
	}

	lgr.Info().Str("username", username).Msg("Default admin account created")
	return nil
}
