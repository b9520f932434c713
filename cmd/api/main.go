package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Comercio-api/internal/application/events"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/application/orders"
	"github.com/jhoicas/Comercio-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/Comercio-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Comercio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Comercio-api/internal/interfaces/http"
	"github.com/jhoicas/Comercio-api/pkg/config"
	"github.com/jhoicas/Comercio-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (fuera de tx); el TxRunner construye los
	// atados a transacción.
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	countRepo := postgres.NewInventoryCountRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos post-commit: con Kafka deshabilitado el dispatcher descarta
	// con log y el negocio sigue igual.
	var publisher events.Publisher
	var kafkaPublisher *infrakafka.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		publisher = kafkaPublisher
	}
	dispatcher := events.NewDispatcher(publisher, log.Component("events"), 256)
	dispatcher.Start()

	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, adjustmentRepo, productRepo, warehouseRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, transferRepo, productRepo, warehouseRepo, dispatcher)
	countUC := inventory.NewCountUseCase(txRunner, countRepo, stockRepo, productRepo, warehouseRepo)
	movementQuery := inventory.NewMovementQueryUseCase(movementRepo, stockRepo)
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, productRepo, warehouseRepo, customerRepo, dispatcher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		WarehouseUC:   warehouseUC,
		CustomerUC:    customerUC,
		AdjustmentUC:  adjustmentUC,
		TransferUC:    transferUC,
		CountUC:       countUC,
		MovementQuery: movementQuery,
		OrderUC:       orderUC,
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

	// Drenar eventos pendientes antes de soltar el transporte.
	dispatcher.Close()
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cierre del publicador de eventos")
		}
	}

	log.Info().Msg("aplicación detenida")
}
