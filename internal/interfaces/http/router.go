package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crisvega-dev/imprenta-stock/internal/application/ledger"
	"github.com/crisvega-dev/imprenta-stock/internal/application/lots"
	"github.com/crisvega-dev/imprenta-stock/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUseCase
	LocationUC   *usecase.LocationUseCase
	SupplierUC   *usecase.SupplierUseCase
	LotRegistry  *lots.Registry
	Engine       *ledger.Engine
	Availability *ledger.Availability
	JWTSecret    string
}

// Router registra las rutas de la API. Todo el ledger va detrás del Bearer
// Token: cada movimiento queda firmado por quien lo crea y quien lo valida.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Lots (protegido)
	lotsGroup := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.LotRegistry)
	lotsGroup.Post("/", lotHandler.Create)
	lotsGroup.Get("/", lotHandler.List)
	lotsGroup.Get("/:id", lotHandler.GetByID)
	lotsGroup.Put("/:id", lotHandler.Update)
	lotsGroup.Delete("/:id", lotHandler.Delete)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.Engine)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Patch("/:id/validate", transactionHandler.Validate)
	transactions.Patch("/:id/cancel", transactionHandler.Cancel)
	transactions.Delete("/:id", transactionHandler.Delete)

	// Stock / disponibilidad (protegido, solo lectura salvo el umbral)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Availability)
	stock.Get("/quantity", stockHandler.Quantity)
	stock.Get("/lots", stockHandler.AvailableLots)
	stock.Get("/items/:id/total", stockHandler.ItemTotal)
	stock.Get("/reorder", stockHandler.Reorder)
	stock.Put("/minimum", stockHandler.SetMinimum)
}
