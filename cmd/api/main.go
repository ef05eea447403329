// @title           Landed Cost API
// @version         1.0
// @description     Costos en destino sobre recepciones de inventario: reparto, verificación y revalorización.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
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

	_ "github.com/jhoicas/landed-cost-api/docs"
	"github.com/jhoicas/landed-cost-api/internal/application/auth"
	"github.com/jhoicas/landed-cost-api/internal/application/inventory"
	"github.com/jhoicas/landed-cost-api/internal/application/landedcost"
	"github.com/jhoicas/landed-cost-api/internal/application/usecase"
	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/landed-cost-api/internal/infrastructure/pdf"
	"github.com/jhoicas/landed-cost-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/landed-cost-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/landed-cost-api/internal/interfaces/http"
	"github.com/jhoicas/landed-cost-api/pkg/config"
	"github.com/jhoicas/landed-cost-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("currency", cfg.LandedCost.CurrencyCode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	costRepo := postgres.NewLandedCostRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	healthChecks := map[string]func(context.Context) error{"postgres": postgres.Ping(pool)}

	// Bloqueo distribuido por costo en destino; sin REDIS_ADDR queda solo el SELECT FOR UPDATE
	var locker landedcost.Locker = landedcost.NoopLocker{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		locker = infraredis.NewLocker(client, cfg.LandedCost.LockTTL())
		healthChecks["redis"] = infraredis.Ping(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: cálculo y validación sin bloqueo distribuido")
	}

	currency := entity.Currency{Code: cfg.LandedCost.CurrencyCode, Rounding: cfg.LandedCost.CurrencyRounding}
	landedCostUC := landedcost.NewUseCase(
		txRunner, costRepo, movRepo, productRepo,
		locker, infrapdf.NewMarotoPDFGenerator(), currency, log,
	)
	receiptUC := inventory.NewReceiptUseCase(txRunner, productRepo, warehouseRepo, movRepo, log)
	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Landed Cost API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Receipts:     receiptUC,
		Products:     productUC,
		Warehouses:   warehouseUC,
		Users:        userUC,
		LandedCosts:  landedCostUC,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
		Log:          log,
		HealthChecks: healthChecks,
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
