package dto

import (
	"time"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// Tipos del contrato de alambre con el servicio de bodega. Es la única
// definición del payload: la usan tanto el cliente saliente como el endpoint
// de previsualización, para que lo que ve el operario sea byte a byte lo que
// se envía. Cantidades y costos viajan como números JSON planos.

const wireDateLayout = "2006-01-02"

// MovementLineWire línea del payload de movimiento.
type MovementLineWire struct {
	ProductID            int64    `json:"productId"`
	Quantity             float64  `json:"quantity"` // con signo solo en ADJ
	UnitCost             *float64 `json:"unitCost,omitempty"`
	BatchID              *int64   `json:"batchId,omitempty"`
	BatchNumber          string   `json:"batchNumber,omitempty"`
	BatchManufactureDate string   `json:"batchManufactureDate,omitempty"` // AAAA-MM-DD
	BatchExpirationDate  string   `json:"batchExpirationDate,omitempty"`  // AAAA-MM-DD
	SerialID             *int64   `json:"serialId,omitempty"`
	SerialNumber         string   `json:"serialNumber,omitempty"`
	LocationCode         string   `json:"locationCode,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

// MovementRequestWire payload completo de movimiento.
type MovementRequestWire struct {
	MovementType       string             `json:"movementType"` // IN, OUT, TRF, ADJ
	LineMode           string             `json:"lineMode"`     // NORMAL, BATCH, SERIAL
	FromWarehouseID    *int64             `json:"fromWarehouseId,omitempty"`
	ToWarehouseID      *int64             `json:"toWarehouseId,omitempty"`
	ReferenceNumber    string             `json:"referenceNumber,omitempty"`
	MovementDate       time.Time          `json:"movementDate"` // RFC 3339
	Lines              []MovementLineWire `json:"lines"`
	AutoCreateBatch    bool               `json:"autoCreateBatch,omitempty"`
	AutoCreateSerial   bool               `json:"autoCreateSerial,omitempty"`
	AutoCreateLocation bool               `json:"autoCreateLocation,omitempty"`
}

// MovementReceiptWire respuesta del servicio al aceptar un movimiento.
type MovementReceiptWire struct {
	MovementID      int64     `json:"movementId"`
	MovementDate    time.Time `json:"movementDate"`
	ReferenceNumber string    `json:"referenceNumber"`
}

// NewMovementRequestWire mapea la solicitud de dominio al payload de alambre.
func NewMovementRequestWire(req *entity.MovementRequest) MovementRequestWire {
	lines := make([]MovementLineWire, 0, len(req.Lines))
	for _, ln := range req.Lines {
		w := MovementLineWire{
			ProductID:    ln.ProductID,
			Quantity:     ln.Quantity.InexactFloat64(),
			BatchID:      ln.BatchID,
			BatchNumber:  ln.BatchNumber,
			SerialID:     ln.SerialID,
			SerialNumber: ln.SerialNumber,
			LocationCode: ln.LocationCode,
			Notes:        ln.Notes,
		}
		if ln.UnitCost != nil {
			c := ln.UnitCost.InexactFloat64()
			w.UnitCost = &c
		}
		if ln.BatchManufactureDate != nil {
			w.BatchManufactureDate = ln.BatchManufactureDate.Format(wireDateLayout)
		}
		if ln.BatchExpirationDate != nil {
			w.BatchExpirationDate = ln.BatchExpirationDate.Format(wireDateLayout)
		}
		lines = append(lines, w)
	}
	return MovementRequestWire{
		MovementType:       req.Type,
		LineMode:           req.LineMode,
		FromWarehouseID:    req.FromWarehouseID,
		ToWarehouseID:      req.ToWarehouseID,
		ReferenceNumber:    req.ReferenceNumber,
		MovementDate:       req.MovementDate,
		Lines:              lines,
		AutoCreateBatch:    req.AutoCreateBatch,
		AutoCreateSerial:   req.AutoCreateSerial,
		AutoCreateLocation: req.AutoCreateLocation,
	}
}

// Receipt convierte la respuesta de alambre a la entidad de dominio.
func (w MovementReceiptWire) Receipt() *entity.MovementReceipt {
	return &entity.MovementReceipt{
		MovementID:      w.MovementID,
		MovementDate:    w.MovementDate,
		ReferenceNumber: w.ReferenceNumber,
	}
}
