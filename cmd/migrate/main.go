// migrate aplica las migraciones SQL embebidas pendientes y termina.
//
// Uso: go run ./cmd/migrate
// Lee la conexión de las mismas variables que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Electrotienda-api/migrations"
	"github.com/jhoicas/Electrotienda-api/pkg/config"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, migrations.FS, log); err != nil {
		log.Error().Err(err).Msg("migraciones")
		os.Exit(1)
	}
	log.Info().Msg("esquema al día")
}
