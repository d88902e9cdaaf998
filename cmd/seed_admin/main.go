// seed_admin crea (o promueve) la cuenta administradora inicial del POS.
// El registro público no permite el rol admin, así que la primera cuenta se siembra por aquí.
//
// Uso: go run ./cmd/seed_admin <email> <password> [nombre]
// También lee SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD y SEED_ADMIN_NAME.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	name := os.Getenv("SEED_ADMIN_NAME")
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}
	if name == "" {
		name = "Administrador"
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <password> [nombre]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.DB.AutoMigrate {
		if _, err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, created, err := uc.SeedAdmin(ctx, name, email, password)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("no se pudo sembrar el admin")
		os.Exit(1)
	}
	if created {
		log.Info().Str("id", user.ID).Str("email", user.Email).Msg("admin creado")
		return
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("admin ya existía; rol y estado asegurados")
}
