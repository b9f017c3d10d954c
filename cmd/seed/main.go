// seed carga (upsert por email) los usuarios predefinidos en PostgreSQL sin levantar la API.
//
// Uso: go run ./cmd/seed [ruta/users.json]
// Por defecto usa USERS_FILE (config/users.json).
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-stock/pkg/config"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	path := cfg.Users.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	users, err := auth.LoadSeedFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer usuarios")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := auth.SeedUsers(ctx, postgres.NewUserRepository(pool), users)
	if err != nil {
		log.Fatal().Err(err).Int("seeded", n).Msg("cargar usuarios")
	}
	log.Info().Int("seeded", n).Str("file", path).Msg("usuarios cargados")
}
