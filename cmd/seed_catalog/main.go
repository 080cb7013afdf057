// seed_catalog carga (o actualiza por SKU) el catálogo de productos desde el CSV exportado
// por compras. Los CSV de Excel en Windows vienen en ISO-8859-1: usar -charset iso-8859-1.
//
// Uso: go run ./cmd/seed_catalog [-charset utf-8|iso-8859-1] [-dry-run] catalogo.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Electrotienda-api/pkg/config"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

func main() {
	charset := flag.String("charset", catalog.CharsetUTF8, "codificación del CSV (utf-8, iso-8859-1)")
	dryRun := flag.Bool("dry-run", false, "solo valida el archivo, no escribe en la base")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, err := catalog.ParseCSV(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%s: %d productos válidos\n", csvPath, len(products))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_catalog"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	// Todo el archivo en una sola transacción: o entra completo o no entra
	created, err := upsertAll(ctx, pool, products)
	if err != nil {
		log.Error().Err(err).Str("file", csvPath).Msg("carga de catálogo")
		os.Exit(1)
	}
	log.Info().
		Str("file", csvPath).
		Int("created", created).
		Int("updated", len(products)-created).
		Msg("catálogo cargado")
}

func upsertAll(ctx context.Context, pool *pgxpool.Pool, products []*entity.Product) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op tras Commit

	repo := postgres.NewProductRepository(tx)
	created := 0
	for _, p := range products {
		id, err := repo.Upsert(ctx, p)
		if err != nil {
			return 0, err
		}
		if id == p.ID {
			created++
		}
	}
	return created, tx.Commit(ctx)
}
