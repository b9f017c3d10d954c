package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-stock/docs"
	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/ports"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	infrakafka "github.com/jhoicas/inventario-stock/internal/infrastructure/kafka"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/redisx"
	httpRouter "github.com/jhoicas/inventario-stock/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock/pkg/config"
	"github.com/jhoicas/inventario-stock/pkg/logger"
	"github.com/jhoicas/inventario-stock/pkg/metrics"
)

// repos agrupa los repositorios del driver elegido.
type repos struct {
	tx        inventory.TxRunner
	products  repository.ProductRepository
	history   repository.StockHistoryRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	stores    repository.StoreRepository
	shipments repository.ShipmentRepository
	users     repository.UserRepository
	health    func(ctx context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r := openRepos(ctx, cfg, log)
	defer r.close()

	// Usuarios predefinidos: se cargan (upsert por email) en cada arranque
	seedUsers, err := auth.LoadSeedFile(cfg.Users.File)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Users.File).Msg("leer usuarios predefinidos")
	}
	n, err := auth.SeedUsers(ctx, r.users, seedUsers)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar usuarios predefinidos")
	}
	log.Info().Int("users", n).Msg("usuarios predefinidos cargados")

	m := metrics.New("inventario")

	// Eventos del libro de stock: Kafka si hay brokers, si no no se publica nada
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	var producer *infrakafka.Producer
	if cfg.Kafka.Enabled() {
		producer = infrakafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Buffer, cfg.App.Name, log)
		producer.Start()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos activa")
	}

	// Idempotency-Key: Redis si está configurado, si no en proceso
	var idemStore ports.IdempotencyStore = memory.NewIdempotencyStore()
	if cfg.Redis.Enabled() {
		rdb, err := redisx.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		idemStore = redisx.NewIdempotencyStore(rdb)
	}

	mutator := inventory.NewStockMutator(r.tx, publisher, m, log.Named("stock"))
	totalsUC := analytics.NewTotalsUseCase(r.purchases, r.sales)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: strings.Join([]string{
			fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept,
			fiber.HeaderAuthorization, httpRouter.HeaderIdempotencyKey,
		}, ","),
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockMutator:   mutator,
		HistoryUC:      inventory.NewHistoryUseCase(r.products, r.history, infrapdf.NewLedgerPDF()),
		LowStockUC:     inventory.NewLowStockUseCase(r.products, cfg.Inventory.LowStockThreshold),
		TotalsUC:       totalsUC,
		MonthlyUC:      analytics.NewMonthlyUseCase(r.sales),
		ProductUC:      usecase.NewProductUseCase(r.products, r.tx, mutator),
		PurchaseUC:     usecase.NewPurchaseUseCase(r.purchases, r.tx, mutator),
		SaleUC:         usecase.NewSaleUseCase(r.sales, r.stores, r.tx, mutator),
		StoreUC:        usecase.NewStoreUseCase(r.stores),
		ShipmentUC:     usecase.NewShipmentUseCase(r.shipments),
		AuthUC:         auth.NewAuthUseCase(r.users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer}),
		JWTSecret:      cfg.JWT.Secret,
		Health:         r.health,
		Idempotency:    idemStore,
		IdempotencyTTL: cfg.Idempotency.TTL,
		Metrics:        m,
		Log:            log.Named("http"),
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
	// el productor se cierra después del servidor: vacía los eventos pendientes
	if producer != nil {
		if err := producer.Close(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("cierre del productor Kafka")
		}
	}

	log.Info().Msg("aplicación detenida")
}

// openRepos abre PostgreSQL o el store en memoria según STORE_DRIVER.
func openRepos(ctx context.Context, cfg *config.Config, log *logger.Logger) repos {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.New()
		return repos{
			tx:        s,
			products:  s.Products(),
			history:   s.History(),
			purchases: s.Purchases(),
			sales:     s.Sales(),
			stores:    s.Stores(),
			shipments: s.Shipments(),
			users:     s.Users(),
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return repos{
		tx:        postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		history:   postgres.NewStockHistoryRepository(pool),
		purchases: postgres.NewPurchaseRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		stores:    postgres.NewStoreRepository(pool),
		shipments: postgres.NewShipmentRepository(pool),
		users:     postgres.NewUserRepository(pool),
		health:    func(ctx context.Context) error { return postgres.Ping(ctx, pool) },
		close:     pool.Close,
	}
}
