package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Electrotienda-api/docs"
	"github.com/jhoicas/Electrotienda-api/internal/application/auth"
	"github.com/jhoicas/Electrotienda-api/internal/application/billing"
	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/application/returns"
	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/events"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Electrotienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Electrotienda-api/internal/interfaces/http"
	"github.com/jhoicas/Electrotienda-api/migrations"
	"github.com/jhoicas/Electrotienda-api/pkg/config"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

// storage adaptador de persistencia elegido por STORAGE_DRIVER.
type storage struct {
	tx    inventory.TxRunner
	repos inventory.Repos
	users repository.UserRepository
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	prom := metrics.New(cfg.App.Name)

	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store, err = openMemory(cfg.Seed, log)
	default:
		store, err = openPostgres(ctx, cfg.DB, prom, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Eventos de movimientos: Kafka si hay brokers, si no no-op
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de movimientos en kafka")
	}

	ledger := inventory.NewLedger(prom, publisher, log)
	r := store.repos

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	if err := seedAdmin(ctx, authUC, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("crear admin inicial")
	}

	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogging(log))
	app.Use(prom.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Electrotienda API",
	}))

	app.Get("/metrics", prom.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		Query:             inventory.NewQueryUseCase(r.Movements, r.Products, prom),
		Adjust:            inventory.NewAdjustUseCase(store.tx, ledger, log),
		Report:            inventory.NewReportUseCase(r.Movements, r.Products, pdfGenerator, cfg.Inventory.LowStockThreshold, prom),
		PurchaseInvoiceUC: billing.NewPurchaseInvoiceUseCase(store.tx, ledger, r.PurchaseInvoices, log),
		SalesInvoiceUC:    billing.NewSalesInvoiceUseCase(store.tx, ledger, r.SalesInvoices, log),
		PurchaseReturnUC:  returns.NewPurchaseReturnUseCase(store.tx, ledger, r.PurchaseReturns, log),
		SalesReturnUC:     returns.NewSalesReturnUseCase(store.tx, ledger, r.SalesReturns, log),
		JWTSecret:         cfg.JWT.Secret,
		JWTIssuer:         cfg.JWT.Issuer,
		ServiceName:       cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openPostgres(ctx context.Context, dbCfg config.DBConfig, prom *metrics.Prometheus, log *logger.Logger) (*storage, error) {
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, migrations.FS, log); err != nil {
		pool.Close()
		return nil, err
	}
	prom.Registry().MustRegister(metrics.NewPoolStatsCollector(pool))

	return &storage{
		tx: postgres.NewTxRunner(pool),
		repos: inventory.Repos{
			Movements:        postgres.NewMovementLogRepository(pool),
			Products:         postgres.NewProductRepository(pool),
			PurchaseInvoices: postgres.NewPurchaseInvoiceRepository(pool),
			SalesInvoices:    postgres.NewSalesInvoiceRepository(pool),
			PurchaseReturns:  postgres.NewPurchaseReturnRepository(pool),
			SalesReturns:     postgres.NewSalesReturnRepository(pool),
		},
		users: postgres.NewUserRepository(pool),
		close: pool.Close,
	}, nil
}

// openMemory almacén en memoria (demo). El catálogo sale de CATALOG_CSV si está definido.
func openMemory(seed config.SeedConfig, log *logger.Logger) (*storage, error) {
	s := memory.NewStore()
	if seed.CatalogCSV != "" {
		f, err := os.Open(seed.CatalogCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		products, err := catalog.ParseCSV(f, seed.CatalogCharset)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			s.Products().Save(p)
		}
		log.Info().Int("products", len(products)).Str("file", seed.CatalogCSV).Msg("catálogo cargado en memoria")
	}
	log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")

	return &storage{
		tx: s,
		repos: inventory.Repos{
			Movements:        s.Movements(),
			Products:         s.Products(),
			PurchaseInvoices: s.PurchaseInvoices(),
			SalesInvoices:    s.SalesInvoices(),
			PurchaseReturns:  s.PurchaseReturns(),
			SalesReturns:     s.SalesReturns(),
		},
		users: s.Users(),
		close: func() {},
	}, nil
}

// seedAdmin crea el primer admin; /api/auth/register exige un admin ya existente.
func seedAdmin(ctx context.Context, uc *auth.AuthUseCase, seed config.SeedConfig, log *logger.Logger) error {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return nil
	}
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    seed.AdminEmail,
		Password: seed.AdminPassword,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("email", seed.AdminEmail).Msg("admin inicial creado")
	return nil
}
