package warehouse

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/catalog"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// Formas de respuesta del lado de lectura del servicio de bodega.
// El payload de envío vive en application/dto (contrato compartido con la
// previsualización); estas son solo de consumo interno del cliente.

const readDateLayout = "2006-01-02"

type errorWire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type productWire struct {
	ID              int64   `json:"id"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	BatchControlled bool    `json:"batchControlled"`
	Serialized      bool    `json:"serialized"`
	AverageCost     float64 `json:"averageCost"`
	UnitMeasure     string  `json:"unitMeasure"`
}

func (w productWire) entity() entity.Product {
	return entity.Product{
		ID:              w.ID,
		SKU:             w.SKU,
		Name:            w.Name,
		BatchControlled: w.BatchControlled,
		Serialized:      w.Serialized,
		AverageCost:     decimal.NewFromFloat(w.AverageCost),
		UnitMeasure:     w.UnitMeasure,
	}
}

type stockItemWire struct {
	Product  productWire `json:"product"`
	Quantity float64     `json:"quantity"`
}

type stockPageWire struct {
	Items []stockItemWire `json:"items"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int             `json:"total"`
}

func (w stockPageWire) page() *catalog.StockPage {
	items := make([]catalog.StockItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, catalog.StockItem{
			Product:  it.Product.entity(),
			Quantity: decimal.NewFromFloat(it.Quantity),
		})
	}
	return &catalog.StockPage{Items: items, Page: w.Page, Size: w.Size, Total: w.Total}
}

type batchWire struct {
	ID              int64   `json:"id"`
	Number          string  `json:"number"`
	OnHand          float64 `json:"onHand"`
	ManufactureDate string  `json:"manufactureDate"` // AAAA-MM-DD
	ExpirationDate  string  `json:"expirationDate"`  // AAAA-MM-DD
	LocationCode    string  `json:"locationCode"`
}

func (w batchWire) entity() entity.Batch {
	return entity.Batch{
		ID:              w.ID,
		Number:          w.Number,
		OnHand:          decimal.NewFromFloat(w.OnHand),
		ManufactureDate: parseReadDate(w.ManufactureDate),
		ExpirationDate:  parseReadDate(w.ExpirationDate),
		LocationCode:    w.LocationCode,
	}
}

type serialWire struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	LocationCode string `json:"locationCode"`
}

type productDetailWire struct {
	Product     productWire  `json:"product"`
	Batches     []batchWire  `json:"batches"`
	BatchTotal  int          `json:"batchTotal"`
	Serials     []serialWire `json:"serials"`
	SerialTotal int          `json:"serialTotal"`
}

func (w productDetailWire) detail() *catalog.ProductDetail {
	d := &catalog.ProductDetail{
		Product:     w.Product.entity(),
		BatchTotal:  w.BatchTotal,
		SerialTotal: w.SerialTotal,
	}
	for _, b := range w.Batches {
		d.Batches = append(d.Batches, b.entity())
	}
	for _, s := range w.Serials {
		d.Serials = append(d.Serials, entity.SerialUnit{
			ID:           s.ID,
			Number:       s.Number,
			LocationCode: s.LocationCode,
		})
	}
	return d
}

type locationWire struct {
	ID          int64  `json:"id"`
	WarehouseID int64  `json:"warehouseId"`
	Code        string `json:"code"`
	AllowsStock bool   `json:"allowsStock"`
}

func parseReadDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(readDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
