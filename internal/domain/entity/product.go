package entity

import "github.com/shopspring/decimal"

// Modos de seguimiento de un producto (value object conceptual).
const (
	TrackingNone   = "NONE"   // granel, sin identificación por unidad
	TrackingBatch  = "BATCH"  // lote con vencimiento
	TrackingSerial = "SERIAL" // unidad identificada individualmente
)

// Product representa un producto o SKU del catálogo, visto desde la consola.
// AverageCost es el costo promedio histórico que reporta el servicio de bodega;
// se usa como respaldo cuando el movimiento no trae monto agregado.
type Product struct {
	ID              int64
	SKU             string
	Name            string
	BatchControlled bool // manejado por lotes
	Serialized      bool // manejado por seriales
	AverageCost     decimal.Decimal
	UnitMeasure     string
}
