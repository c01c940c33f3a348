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
	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stocktrack-api/internal/interfaces/http"
	"github.com/jhoicas/stocktrack-api/pkg/config"
	"github.com/jhoicas/stocktrack-api/pkg/logger"
)

const swaggerFilePath = "./docs/swagger.json"

// newApp construye la aplicación Fiber con los middlewares base y /health.
// El UI de swagger solo se monta si el spec generado existe: swagger.New
// hace panic con un FilePath inexistente y el binario debe poder arrancar
// sin docs generados.
func newApp(cfg *config.Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFilePath,
			Path:     "docs",
			Title:    "StockTrack API",
		}))
	} else {
		log.Warn().Str("file", swaggerFilePath).
			Msg("swagger.json no encontrado; UI de documentación deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	return app
}

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recordTransactionUC := inventory.NewRecordTransactionUseCase(txRunner)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, supplierRepo, recordTransactionUC)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})

	app := newApp(cfg, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		SupplierUC:        supplierUC,
		UserUC:            userUC,
		TransactionUC:     transactionUC,
		RecordTransaction: recordTransactionUC,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
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
