// Command seeduser creates the first ADMIN account, or resets its password
// if the e-mail already exists.
//
//	SEED_EMAIL=admin@sorty.local SEED_PASSWORD=changeme123 go run ./cmd/seeduser
package main

import (
	"context"
	"errors"
	"os"

	"sorty/internal/config"
	"sorty/internal/infra"
	"sorty/internal/model"
	"sorty/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	email := envOr("SEED_EMAIL", "admin@sorty.local")
	password := envOr("SEED_PASSWORD", "changeme123")
	name := envOr("SEED_NAME", "Administrador")

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}
	if err := infra.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = string(hash)
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		if err := users.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Msg("update error")
		}
		log.Info().Str("email", email).Msg("admin user updated")
	case errors.Is(err, repository.ErrNotFound):
		u := &model.User{Email: email, Name: name, PasswordHash: string(hash), Role: model.RoleAdmin, IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal().Err(err).Msg("insert error")
		}
		log.Info().Str("email", email).Str("id", u.ID.String()).Msg("admin user created")
	default:
		log.Fatal().Err(err).Msg("lookup error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
