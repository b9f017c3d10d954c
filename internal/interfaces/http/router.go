package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/auth"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/ports"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/pkg/logger"
	"github.com/jhoicas/inventario-stock/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockMutator *inventory.StockMutator
	HistoryUC    *inventory.HistoryUseCase
	LowStockUC   *inventory.LowStockUseCase
	TotalsUC     *analytics.TotalsUseCase
	MonthlyUC    *analytics.MonthlyUseCase
	ProductUC    *usecase.ProductUseCase
	PurchaseUC   *usecase.PurchaseUseCase
	SaleUC       *usecase.SaleUseCase
	StoreUC      *usecase.StoreUseCase
	ShipmentUC   *usecase.ShipmentUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string

	// Opcionales
	Health         func(ctx context.Context) error // nil: /health siempre ok
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	Metrics        *metrics.Metrics
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log, deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	authMW := AuthMiddleware(deps.JWTSecret)
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	idem := Idempotency(deps.Idempotency, ttl, deps.Log)

	api := app.Group("/api")

	// Auth: POST público, GET con token
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)
	api.Get("/login", authMW, authHandler.Me)

	// Stock
	stock := api.Group("/stock", authMW)
	stockHandler := NewStockHandler(deps.StockMutator, deps.HistoryUC, deps.LowStockUC)
	stock.Post("/adjust", idem, stockHandler.Adjust)
	stock.Get("/history/:productId/pdf", stockHandler.HistoryPDF)
	stock.Get("/history/:productId", stockHandler.History)
	stock.Get("/low-stock/:userId", RequireSelf("userId"), stockHandler.LowStock)

	// Products
	products := api.Group("/product", authMW)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/add", idem, productHandler.Create)
	products.Get("/get/:userID", RequireSelf("userID"), productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Post("/update", productHandler.Update)
	products.Delete("/delete/:id", productHandler.Delete)
	products.Get("/delete/:id", productHandler.Delete)
	products.Get("/:id", productHandler.GetByID)

	// Purchases
	purchases := api.Group("/purchase", authMW)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.TotalsUC)
	purchases.Post("/add", idem, purchaseHandler.Create)
	purchases.Get("/get/:userID/totalpurchaseamount", RequireSelf("userID"), purchaseHandler.TotalAmount)
	purchases.Get("/get/:userID", RequireSelf("userID"), purchaseHandler.List)
	purchases.Put("/update/:id", purchaseHandler.Update)
	purchases.Delete("/delete/:id", purchaseHandler.Delete)

	// Sales
	sales := api.Group("/sales", authMW)
	salesHandler := NewSalesHandler(deps.SaleUC, deps.TotalsUC, deps.MonthlyUC)
	sales.Post("/add", idem, salesHandler.Create)
	sales.Get("/getmonthly", salesHandler.Monthly)
	sales.Get("/get/:userID/totalsaleamount", RequireSelf("userID"), salesHandler.TotalAmount)
	sales.Get("/get/:userID", RequireSelf("userID"), salesHandler.List)
	sales.Put("/update/:id", salesHandler.Update)
	sales.Delete("/delete/:id", salesHandler.Delete)

	// Stores
	stores := api.Group("/store", authMW)
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/add", idem, storeHandler.Create)
	stores.Get("/get/:userID", RequireSelf("userID"), storeHandler.List)

	// Shipments
	shipments := api.Group("/shipment", authMW)
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Post("/add/:userID", RequireSelf("userID"), idem, shipmentHandler.Create)
	shipments.Get("/all/:userID", RequireSelf("userID"), shipmentHandler.List)
	shipments.Put("/update/:id/:userID", RequireSelf("userID"), shipmentHandler.Update)
	shipments.Delete("/delete/:id/:userID", RequireSelf("userID"), shipmentHandler.Delete)
	shipments.Get("/:id/:userID", RequireSelf("userID"), shipmentHandler.GetByID)
}
