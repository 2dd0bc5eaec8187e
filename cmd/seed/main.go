// Command seed creates the initial ADMIN account so a fresh deployment can log
// in. Controlled by SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD / SEED_ADMIN_NAME;
// it is a no-op when the email already exists.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/infrastructure/postgres"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/config"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")
	password := getenv("SEED_ADMIN_PASSWORD", "")
	name := getenv("SEED_ADMIN_NAME", "Administrator")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	existing, err := repo.GetByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("check existing admin")
	}
	if existing != nil {
		log.Info().Str("email", email).Msg("admin account already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(u); err != nil {
		log.Fatal().Err(err).Msg("create admin account")
	}
	log.Info().Str("email", email).Msg("admin account created")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
