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

	"github.com/tu-usuario/pasteleria-pos/internal/application/auth"
	"github.com/tu-usuario/pasteleria-pos/internal/application/stock"
	"github.com/tu-usuario/pasteleria-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/pasteleria-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/pasteleria-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pasteleria-pos/internal/interfaces/http"
	"github.com/tu-usuario/pasteleria-pos/internal/interfaces/jobs"
	"github.com/tu-usuario/pasteleria-pos/pkg/config"
	"github.com/tu-usuario/pasteleria-pos/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	modRepo := postgres.NewStockModificationRepository(pool)
	reportRepo := postgres.NewStockReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewUseCase(txRunner, lotRepo, txRepo, modRepo, reportRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, stockUC, log)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	orderUC := usecase.NewOrderUseCase(orderRepo, paymentRepo, productRepo, userRepo, stockUC, receiptGenerator, log)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	warningJob, err := jobs.NewWarningScheduler(cfg.Jobs, stockUC, log)
	if err != nil {
		log.Fatal().Err(err).Msg("programar barrido de vencimientos")
	}
	warningJob.Start()
	defer warningJob.Stop()

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
		Title:    "Pastelería POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProductUC: productUC,
		OrderUC:   orderUC,
		StockUC:   stockUC,
		JWTSecret: cfg.JWT.Secret,
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
