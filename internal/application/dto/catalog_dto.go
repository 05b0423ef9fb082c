package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
)

// StockItemDTO un producto con su existencia en la bodega consultada.
type StockItemDTO struct {
	ProductID       int64           `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	BatchControlled bool            `json:"batch_controlled"`
	Serialized      bool            `json:"serialized"`
	AverageCost     decimal.Decimal `json:"average_cost"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// StockListResponse página del listado de stock.
type StockListResponse struct {
	Items []StockItemDTO `json:"items"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int            `json:"total"`
}

// NewStockListResponse arma la respuesta desde la página de la fachada.
func NewStockListResponse(p *catalog.StockPage) StockListResponse {
	items := make([]StockItemDTO, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, StockItemDTO{
			ProductID:       it.Product.ID,
			SKU:             it.Product.SKU,
			Name:            it.Product.Name,
			BatchControlled: it.Product.BatchControlled,
			Serialized:      it.Product.Serialized,
			AverageCost:     it.Product.AverageCost,
			Quantity:        it.Quantity,
		})
	}
	return StockListResponse{Items: items, Page: p.Page, Size: p.Size, Total: p.Total}
}

// BatchDTO lote existente para selección en la consola.
type BatchDTO struct {
	ID              int64           `json:"id"`
	Number          string          `json:"number"`
	OnHand          decimal.Decimal `json:"on_hand"`
	ManufactureDate time.Time       `json:"manufacture_date"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	LocationCode    string          `json:"location_code,omitempty"`
}

// SerialUnitDTO serial existente para selección en la consola.
type SerialUnitDTO struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	LocationCode string `json:"location_code,omitempty"`
}

// ProductDetailResponse producto con lotes y seriales paginados.
type ProductDetailResponse struct {
	ProductID    int64           `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	TrackingMode string          `json:"tracking_mode"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	Batches      []BatchDTO      `json:"batches"`
	BatchTotal   int             `json:"batch_total"`
	Serials      []SerialUnitDTO `json:"serials"`
	SerialTotal  int             `json:"serial_total"`
}

// NewProductDetailResponse arma el detalle con el modo de seguimiento resuelto.
func NewProductDetailResponse(d *catalog.ProductDetail) ProductDetailResponse {
	resp := ProductDetailResponse{
		ProductID:    d.Product.ID,
		SKU:          d.Product.SKU,
		Name:         d.Product.Name,
		TrackingMode: movement.ResolveTrackingMode(d.Product.BatchControlled, d.Product.Serialized),
		AverageCost:  d.Product.AverageCost,
		Batches:      make([]BatchDTO, 0, len(d.Batches)),
		BatchTotal:   d.BatchTotal,
		Serials:      make([]SerialUnitDTO, 0, len(d.Serials)),
		SerialTotal:  d.SerialTotal,
	}
	for _, b := range d.Batches {
		resp.Batches = append(resp.Batches, BatchDTO{
			ID:              b.ID,
			Number:          b.Number,
			OnHand:          b.OnHand,
			ManufactureDate: b.ManufactureDate,
			ExpirationDate:  b.ExpirationDate,
			LocationCode:    b.LocationCode,
		})
	}
	for _, s := range d.Serials {
		resp.Serials = append(resp.Serials, SerialUnitDTO{
			ID:           s.ID,
			Number:       s.Number,
			LocationCode: s.LocationCode,
		})
	}
	return resp
}

// LocationDTO ubicación que permite almacenar stock.
type LocationDTO struct {
	ID          int64  `json:"id"`
	WarehouseID int64  `json:"warehouse_id"`
	Code        string `json:"code"`
	AllowsStock bool   `json:"allows_stock"`
}

// NewLocationDTOs mapea las entidades a la respuesta.
func NewLocationDTOs(locations []entity.Location) []LocationDTO {
	out := make([]LocationDTO, 0, len(locations))
	for _, loc := range locations {
		out = append(out, LocationDTO{
			ID:          loc.ID,
			WarehouseID: loc.WarehouseID,
			Code:        loc.Code,
			AllowsStock: loc.AllowsStock,
		})
	}
	return out
}
