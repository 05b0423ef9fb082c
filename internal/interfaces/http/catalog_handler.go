package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/dto"
)

// CatalogHandler maneja las consultas de solo lectura al servicio de bodega.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListStock godoc
// @Summary      Listado paginado de producto/stock por bodega
// @Tags         catalog
// @Produce      json
// @Param        warehouse_id  query  int     true   "Bodega a consultar"
// @Param        product_id    query  int     false  "Filtrar por producto"
// @Param        category_id   query  int     false  "Filtrar por categoría"
// @Param        search        query  string  false  "Texto libre; se normaliza sin tildes"
// @Param        sort          query  string  false  "Campo de orden"
// @Param        page          query  int     false  "Página (desde 1)"
// @Param        size          query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.StockListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *CatalogHandler) ListStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	warehouseID := int64(c.QueryInt("warehouse_id"))
	if warehouseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	q := catalog.StockQuery{
		WarehouseID: warehouseID,
		ProductID:   int64(c.QueryInt("product_id")),
		CategoryID:  int64(c.QueryInt("category_id")),
		Search:      c.Query("search"),
		Sort:        c.Query("sort"),
		Page:        page.Page,
		Size:        page.Size,
	}
	result, err := h.uc.ListStock(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewStockListResponse(result))
}

// GetProductDetail godoc
// @Summary      Detalle de producto con lotes y seriales paginados
// @Tags         catalog
// @Produce      json
// @Param        id           path   int     true   "ID del producto"
// @Param        batch_page   query  int     false  "Página de lotes"
// @Param        batch_size   query  int     false  "Tamaño de página de lotes"
// @Param        batch_sort   query  string  false  "Orden de lotes (por defecto expirationDate)"
// @Param        serial_page  query  int     false  "Página de seriales"
// @Param        serial_size  query  int     false  "Tamaño de página de seriales"
// @Param        serial_sort  query  string  false  "Orden de seriales (por defecto number)"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProductDetail(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de producto inválido"})
	}
	q := catalog.DetailQuery{
		BatchPage:  c.QueryInt("batch_page"),
		BatchSize:  c.QueryInt("batch_size"),
		BatchSort:  c.Query("batch_sort"),
		SerialPage: c.QueryInt("serial_page"),
		SerialSize: c.QueryInt("serial_size"),
		SerialSort: c.Query("serial_sort"),
	}
	detail, err := h.uc.GetProductDetail(c.Context(), int64(productID), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewProductDetailResponse(detail))
}

// ListLocations godoc
// @Summary      Estanterías de la bodega que permiten almacenar stock
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.LocationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	warehouseID, err := c.ParamsInt("id")
	if err != nil || warehouseID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de bodega inválido"})
	}
	locations, err := h.uc.ListLocations(c.Context(), int64(warehouseID))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewLocationDTOs(locations))
}
