package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// Reader es el lado de lectura del servicio de bodega. Las lecturas son
// snapshots eventualmente consistentes tomados antes de iniciar una sesión de
// captura; este backend nunca los muta.
type Reader interface {
	ListStock(ctx context.Context, q StockQuery) (*StockPage, error)
	GetProductDetail(ctx context.Context, productID int64, q DetailQuery) (*ProductDetail, error)
	ListLocations(ctx context.Context, warehouseID int64) ([]entity.Location, error)
}

// StockQuery filtros del listado paginado de producto/stock por bodega.
type StockQuery struct {
	WarehouseID int64
	ProductID   int64
	CategoryID  int64
	Search      string // texto libre, ya normalizado por el caso de uso
	Sort        string
	Page        int
	Size        int
}

// StockItem un producto con su existencia en la bodega consultada.
type StockItem struct {
	Product  entity.Product
	Quantity decimal.Decimal
}

// StockPage página del listado de stock.
type StockPage struct {
	Items []StockItem
	Page  int
	Size  int
	Total int
}

// DetailQuery paginación del detalle de producto: lotes ordenables por
// vencimiento y seriales ordenables por código.
type DetailQuery struct {
	BatchPage  int
	BatchSize  int
	BatchSort  string // ej. "expirationDate"
	SerialPage int
	SerialSize int
	SerialSort string // ej. "number"
}

// ProductDetail detalle de producto con sus lotes y seriales paginados.
type ProductDetail struct {
	Product     entity.Product
	Batches     []entity.Batch
	BatchTotal  int
	Serials     []entity.SerialUnit
	SerialTotal int
}
