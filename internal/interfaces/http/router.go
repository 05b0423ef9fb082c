package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/capture"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CaptureUC *capture.UseCase
	CatalogUC *catalog.UseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones de captura de movimientos
	sessions := api.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.CaptureUC, deps.CatalogUC, deps.Log)
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id/action", sessionHandler.ChooseAction)
	sessions.Put("/:id/product", sessionHandler.ChooseProduct)
	sessions.Put("/:id/rows", sessionHandler.UpdateRows)
	sessions.Post("/:id/rows/fill-down", sessionHandler.FillDown)
	sessions.Post("/:id/preview", sessionHandler.Preview)
	sessions.Post("/:id/submit", sessionHandler.Submit)
	sessions.Post("/:id/cancel", sessionHandler.Cancel)

	// Catálogo de solo lectura (proxy al servicio de bodega)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/stock", catalogHandler.ListStock)
	api.Get("/products/:id", catalogHandler.GetProductDetail)
	api.Get("/warehouses/:id/locations", catalogHandler.ListLocations)
}
