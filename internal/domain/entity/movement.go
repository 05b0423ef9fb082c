package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario (valores del contrato con el servicio de bodega).
const (
	MovementTypeIN  = "IN"  // entrada (recepción)
	MovementTypeOUT = "OUT" // salida (despacho/consumo)
	MovementTypeTRF = "TRF" // traslado entre bodegas
	MovementTypeADJ = "ADJ" // ajuste (positivo o negativo)
)

// Modos de línea de un movimiento. Todas las líneas de una solicitud
// comparten el mismo modo.
const (
	LineModeNormal = "NORMAL"
	LineModeBatch  = "BATCH"
	LineModeSerial = "SERIAL"
)

// MovementLine es una línea de movimiento ya resuelta: un producto y, según el
// modo, la referencia a un lote/serial existente o los datos de uno nuevo.
type MovementLine struct {
	ProductID int64
	Quantity  decimal.Decimal  // con signo solo en ADJ
	UnitCost  *decimal.Decimal // nil = sin costo (salidas de serial, ajustes negativos)

	// Lote: referencia existente (salida/traslado/ajuste) o datos nuevos (recepción).
	BatchID              *int64
	BatchNumber          string
	BatchManufactureDate *time.Time
	BatchExpirationDate  *time.Time

	// Serial: referencia existente o código nuevo (recepción).
	SerialID     *int64
	SerialNumber string

	LocationCode string
	Notes        string
}

// MovementRequest es la solicitud atómica de movimiento que se valida
// localmente y se entrega al servicio de bodega. Se construye en memoria
// desde el estado de la sesión de captura, se envía una sola vez y se descarta.
type MovementRequest struct {
	Type            string // IN, OUT, TRF, ADJ
	LineMode        string // NORMAL, BATCH, SERIAL
	FromWarehouseID *int64
	ToWarehouseID   *int64
	ReferenceNumber string
	MovementDate    time.Time
	Lines           []MovementLine

	// Señales para que el servicio cree maestras inexistentes al aplicar el
	// movimiento. Solo verdaderas donde el tipo de movimiento lo permite.
	AutoCreateBatch    bool
	AutoCreateSerial   bool
	AutoCreateLocation bool
}

// TotalQuantity suma las cantidades de todas las líneas (con signo).
func (r *MovementRequest) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range r.Lines {
		total = total.Add(ln.Quantity)
	}
	return total
}

// MovementReceipt es la respuesta del servicio tras aceptar un movimiento.
type MovementReceipt struct {
	MovementID      int64
	MovementDate    time.Time
	ReferenceNumber string
}
