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

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/capture"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/session"
	infrapdf "github.com/ERP-L/ERP-FRONT-sub000/internal/infrastructure/pdf"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/infrastructure/warehouse"
	httpRouter "github.com/ERP-L/ERP-FRONT-sub000/internal/interfaces/http"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/config"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
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
		Str("wms", cfg.Warehouse.BaseURL).
		Msg("iniciando consola de movimientos")

	// Cliente del servicio de bodega: lecturas de catálogo y envío de movimientos.
	wmsClient := warehouse.NewClient(cfg.Warehouse, log)

	catalogUC := catalog.NewUseCase(wmsClient)

	// Tras un envío exitoso la consola refresca el stock en la siguiente
	// consulta; aquí solo se deja traza del ciclo.
	sessions := session.NewManager(time.Now, func() {
		log.Debug().Msg("movimiento aceptado; el stock se refresca en la próxima consulta")
	})

	var voucher capture.VoucherGenerator
	if cfg.Warehouse.VoucherEnabled {
		voucher = infrapdf.NewMarotoVoucherGenerator()
	}
	captureUC := capture.NewUseCase(sessions, wmsClient, voucher, log)

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
		Title:    "Consola de Movimientos",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CaptureUC: captureUC,
		CatalogUC: catalogUC,
		Log:       log,
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

	log.Info().Msg("consola detenida")
}
