// Package warehouse implementa el cliente HTTP hacia el servicio remoto de
// bodega/inventario: la frontera de envío de movimientos y el lado de lectura
// (stock, detalle de producto, ubicaciones). El servicio es autoritativo;
// aquí no hay reintentos ni estado.
package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/dto"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/config"
	"github.com/ERP-L/ERP-FRONT-sub000/pkg/logger"
)

// Client cliente del servicio de bodega. Implementa session.Submitter y
// catalog.Reader.
type Client struct {
	rc  *resty.Client
	log *logger.Logger
}

// NewClient construye el cliente. Sin reintentos: una falla se reporta una
// sola vez y el reenvío lo decide el operario.
func NewClient(cfg config.WarehouseConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.ServiceToken != "" {
		rc.SetHeader("X-Service-Token", cfg.ServiceToken)
	}
	return &Client{rc: rc, log: log}
}

// SubmitMovement envía la solicitud de movimiento ya validada. La solicitud es
// atómica desde la perspectiva de la consola: o el servicio la acepta completa
// o no pasa nada.
func (c *Client) SubmitMovement(ctx context.Context, req *entity.MovementRequest) (*entity.MovementReceipt, error) {
	wire := dto.NewMovementRequestWire(req)
	var out dto.MovementReceiptWire

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(wire).
		SetResult(&out).
		Post("/movements")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	if resp.IsError() {
		return nil, c.remoteError(resp)
	}
	if out.MovementID == 0 {
		return nil, fmt.Errorf("%w: respuesta ilegible del envío", domain.ErrRemoteService)
	}

	c.log.Debug().
		Int64("movement_id", out.MovementID).
		Str("reference", out.ReferenceNumber).
		Msg("movimiento aceptado")
	return out.Receipt(), nil
}

// ListStock lista producto/stock por bodega con filtros.
func (c *Client) ListStock(ctx context.Context, q catalog.StockQuery) (*catalog.StockPage, error) {
	r := c.rc.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(q.Page)).
		SetQueryParam("size", strconv.Itoa(q.Size))
	if q.ProductID != 0 {
		r.SetQueryParam("productId", strconv.FormatInt(q.ProductID, 10))
	}
	if q.CategoryID != 0 {
		r.SetQueryParam("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Search != "" {
		r.SetQueryParam("search", q.Search)
	}
	if q.Sort != "" {
		r.SetQueryParam("sort", q.Sort)
	}

	var out stockPageWire
	resp, err := r.SetResult(&out).
		Get(fmt.Sprintf("/warehouses/%d/stock", q.WarehouseID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	if resp.IsError() {
		return nil, c.remoteError(resp)
	}
	return out.page(), nil
}

// GetProductDetail devuelve el producto con sus lotes (ordenables por
// vencimiento) y seriales (ordenables por código) paginados.
func (c *Client) GetProductDetail(ctx context.Context, productID int64, q catalog.DetailQuery) (*catalog.ProductDetail, error) {
	var out productDetailWire
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("batchPage", strconv.Itoa(q.BatchPage)).
		SetQueryParam("batchSize", strconv.Itoa(q.BatchSize)).
		SetQueryParam("batchSort", q.BatchSort).
		SetQueryParam("serialPage", strconv.Itoa(q.SerialPage)).
		SetQueryParam("serialSize", strconv.Itoa(q.SerialSize)).
		SetQueryParam("serialSort", q.SerialSort).
		SetResult(&out).
		Get(fmt.Sprintf("/products/%d", productID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	if resp.StatusCode() == 404 {
		return nil, domain.ErrNotFound
	}
	if resp.IsError() {
		return nil, c.remoteError(resp)
	}
	return out.detail(), nil
}

// ListLocations lista las ubicaciones de la bodega que permiten almacenar stock.
func (c *Client) ListLocations(ctx context.Context, warehouseID int64) ([]entity.Location, error) {
	var out []locationWire
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("allowsStock", "true").
		SetResult(&out).
		Get(fmt.Sprintf("/warehouses/%d/locations", warehouseID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}
	if resp.IsError() {
		return nil, c.remoteError(resp)
	}
	locations := make([]entity.Location, 0, len(out))
	for _, w := range out {
		locations = append(locations, entity.Location{
			ID:          w.ID,
			WarehouseID: w.WarehouseID,
			Code:        w.Code,
			AllowsStock: w.AllowsStock,
		})
	}
	return locations, nil
}

// remoteError mapea una respuesta no exitosa a un solo error de servicio,
// conservando el código del cuerpo si el servicio lo incluyó.
func (c *Client) remoteError(resp *resty.Response) error {
	var body errorWire
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return fmt.Errorf("%w: %s (%s, HTTP %d)", domain.ErrRemoteService, body.Message, body.Code, resp.StatusCode())
	}
	return fmt.Errorf("%w: HTTP %d", domain.ErrRemoteService, resp.StatusCode())
}
