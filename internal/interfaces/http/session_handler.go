package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/capture"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/dto"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
)

// SessionHandler maneja las peticiones HTTP de las sesiones de captura.
type SessionHandler struct {
	capture *capture.UseCase
	catalog *catalog.UseCase
	log     *logger.Logger
}

// NewSessionHandler construye el handler.
func NewSessionHandler(captureUC *capture.UseCase, catalogUC *catalog.UseCase, log *logger.Logger) *SessionHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionHandler{capture: captureUC, catalog: catalogUC, log: log}
}

// Create godoc
// @Summary      Abrir una sesión de captura
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	s := h.capture.Sessions().Create()
	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(s))
}

// Get godoc
// @Summary      Estado de una sesión de captura
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(s))
}

// ChooseAction godoc
// @Summary      Elegir el tipo de movimiento de la sesión
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.ChooseActionRequest  true  "type: IN | OUT | TRF | ADJ"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/action [put]
func (h *SessionHandler) ChooseAction(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ChooseActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.ChooseAction(in.Type); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(s))
}

// ChooseProduct godoc
// @Summary      Fijar el producto de la sesión
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la sesión"
// @Param        body  body  dto.ChooseProductRequest  true  "Snapshot del producto elegido en el catálogo"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/product [put]
func (h *SessionHandler) ChooseProduct(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ChooseProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.ChooseProduct(in.Product()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(s))
}

// UpdateRows godoc
// @Summary      Reemplazar el formulario de filas de la sesión
// @Description  La consola envía el formulario completo en cada edición. El
//	handler consulta las estanterías de la bodega activa para canonizar los
//	códigos digitados; si la consulta falla las filas se aceptan igual y los
//	códigos viajan tal cual.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la sesión"
// @Param        body  body  dto.RowsUpdateRequest  true  "Estado completo del formulario"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/rows [put]
func (h *SessionHandler) UpdateRows(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RowsUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	locations := h.fetchLocations(c, s.Input().Type, in)
	if err := s.UpdateRows(in.RowsUpdate(locations)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(s))
}

// fetchLocations trae las estanterías de la bodega activa del movimiento: la
// destino para entradas y traslados, la origen en los demás casos. Es de mejor
// esfuerzo: sin bodega o con el servicio caído se captura sin canonizar.
func (h *SessionHandler) fetchLocations(c *fiber.Ctx, movementType string, in dto.RowsUpdateRequest) []entity.Location {
	warehouseID := in.FromWarehouseID
	if movementType == entity.MovementTypeIN || movementType == entity.MovementTypeTRF {
		warehouseID = in.ToWarehouseID
	}
	if warehouseID == 0 {
		return nil
	}
	locations, err := h.catalog.ListLocations(c.Context(), warehouseID)
	if err != nil {
		h.log.Warn().Err(err).Int64("warehouse_id", warehouseID).Msg("consulta de estanterías para canonizar códigos")
		return nil
	}
	return locations
}

// FillDown godoc
// @Summary      Propagar un valor hacia abajo en las filas de seriales
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la sesión"
// @Param        body  body  dto.FillDownRequest  true  "index, field (number | location), value"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/rows/fill-down [post]
func (h *SessionHandler) FillDown(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.FillDownRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	field := movement.SerialField(in.Field)
	if field != movement.SerialFieldNumber && field != movement.SerialFieldLocation {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "field debe ser number o location"})
	}
	if err := s.FillDown(in.Index, field, in.Value); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSessionResponse(s))
}

// Preview godoc
// @Summary      Construir y validar el movimiento sin enviarlo
// @Description  Devuelve la solicitud exacta que se enviaría al servicio de
//	bodega. No toca la red: una validación fallida deja la sesión en edición
//	con el error retenido.
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.MovementRequestWire
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/preview [post]
func (h *SessionHandler) Preview(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	req, err := s.Preview()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMovementRequestWire(req))
}

// Submit godoc
// @Summary      Enviar el movimiento de la sesión al servicio de bodega
// @Description  Con ?voucher=pdf la respuesta es el comprobante PDF del
//	movimiento aceptado; sin él, el acuse en JSON. Un segundo envío mientras
//	hay uno en vuelo responde 409.
// @Tags         sessions
// @Produce      json
// @Produce      application/pdf
// @Param        id       path   string  true   "ID de la sesión"
// @Param        voucher  query  string  false  "pdf para recibir el comprobante"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	withVoucher := c.Query("voucher") == "pdf"
	res, err := h.capture.Submit(c.Context(), c.Params("id"), withVoucher)
	if err != nil {
		return writeError(c, err)
	}
	if withVoucher && len(res.Voucher) > 0 {
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-movimiento.pdf"`)
		return c.Send(res.Voucher)
	}
	return c.JSON(dto.NewReceiptResponse(res.Receipt))
}

// Cancel godoc
// @Summary      Abandonar la captura y regresar la sesión a Idle
// @Tags         sessions
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *fiber.Ctx) error {
	s, err := h.capture.Sessions().Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	s.Cancel()
	return c.JSON(dto.NewSessionResponse(s))
}
