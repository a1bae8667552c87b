package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/crisvega-dev/imprenta-stock/internal/application/ledger"
	"github.com/crisvega-dev/imprenta-stock/internal/application/lots"
	"github.com/crisvega-dev/imprenta-stock/internal/application/usecase"
	"github.com/crisvega-dev/imprenta-stock/internal/infrastructure/postgres"
	httpRouter "github.com/crisvega-dev/imprenta-stock/internal/interfaces/http"
	"github.com/crisvega-dev/imprenta-stock/pkg/config"
	"github.com/crisvega-dev/imprenta-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	stockRepo := postgres.NewLotLocationRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := usecase.NewItemUseCase(itemRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo, stockRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	lotRegistry := lots.NewRegistry(lotRepo, stockRepo, txRepo, itemRepo)
	engine := ledger.NewEngine(txRunner, txRepo, lotRepo, stockRepo, itemRepo, locationRepo)
	availability := ledger.NewAvailability(stockRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Imprenta Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		LocationUC:   locationUC,
		SupplierUC:   supplierUC,
		LotRegistry:  lotRegistry,
		Engine:       engine,
		Availability: availability,
		JWTSecret:    cfg.JWT.Secret,
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
