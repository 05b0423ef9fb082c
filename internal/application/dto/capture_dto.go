package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/session"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
)

// ChooseActionRequest body para PUT /api/sessions/:id/action.
type ChooseActionRequest struct {
	Type string `json:"type"` // IN, OUT, TRF, ADJ
}

// ChooseProductRequest body para PUT /api/sessions/:id/product.
// Es el snapshot del producto que la consola ya consultó al catálogo.
type ChooseProductRequest struct {
	ID              int64           `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	BatchControlled bool            `json:"batch_controlled"`
	Serialized      bool            `json:"serialized"`
	AverageCost     decimal.Decimal `json:"average_cost"`
	UnitMeasure     string          `json:"unit_measure"`
}

// Product convierte el snapshot a entidad.
func (r ChooseProductRequest) Product() entity.Product {
	return entity.Product{
		ID:              r.ID,
		SKU:             r.SKU,
		Name:            r.Name,
		BatchControlled: r.BatchControlled,
		Serialized:      r.Serialized,
		AverageCost:     r.AverageCost,
		UnitMeasure:     r.UnitMeasure,
	}
}

// NormalRowDTO fila de captura sin seguimiento.
type NormalRowDTO struct {
	Quantity     decimal.Decimal `json:"quantity"`
	LocationCode string          `json:"location_code,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// BatchRowDTO fila de captura por lote.
type BatchRowDTO struct {
	BatchID         int64           `json:"batch_id,omitempty"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	LocationCode    string          `json:"location_code,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// SerialRowDTO fila de captura por serial.
type SerialRowDTO struct {
	SerialID     int64  `json:"serial_id,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	LocationCode string `json:"location_code,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// RowsUpdateRequest body para PUT /api/sessions/:id/rows. Reemplaza el estado
// completo del formulario de captura.
type RowsUpdateRequest struct {
	FromWarehouseID int64            `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64            `json:"to_warehouse_id,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	MovementDate    *time.Time       `json:"movement_date,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"` // monto agregado del movimiento
	Normal          *NormalRowDTO    `json:"normal,omitempty"`
	BatchRows       []BatchRowDTO    `json:"batch_rows,omitempty"`
	SerialRows      []SerialRowDTO   `json:"serial_rows,omitempty"`
	SerialTotal     *int             `json:"serial_total,omitempty"`
}

// RowsUpdate convierte el body al comando de sesión. locations es el snapshot
// de ubicaciones de la bodega activa, consultado por el handler.
func (r RowsUpdateRequest) RowsUpdate(locations []entity.Location) session.RowsUpdate {
	u := session.RowsUpdate{
		FromWarehouseID: r.FromWarehouseID,
		ToWarehouseID:   r.ToWarehouseID,
		ReferenceNumber: r.ReferenceNumber,
		MovementDate:    r.MovementDate,
		Amount:          r.Amount,
		Locations:       locations,
		SerialTotal:     r.SerialTotal,
	}
	if r.Normal != nil {
		u.NormalRow = &movement.NormalRow{
			Quantity:     r.Normal.Quantity,
			LocationCode: r.Normal.LocationCode,
			Notes:        r.Normal.Notes,
		}
	}
	for _, row := range r.BatchRows {
		u.BatchRows = append(u.BatchRows, movement.BatchRow{
			BatchID:         row.BatchID,
			BatchNumber:     row.BatchNumber,
			ManufactureDate: row.ManufactureDate,
			ExpirationDate:  row.ExpirationDate,
			Quantity:        row.Quantity,
			LocationCode:    row.LocationCode,
			Notes:           row.Notes,
		})
	}
	for _, row := range r.SerialRows {
		u.SerialRows = append(u.SerialRows, movement.SerialRow{
			SerialID:     row.SerialID,
			SerialNumber: row.SerialNumber,
			LocationCode: row.LocationCode,
			Notes:        row.Notes,
		})
	}
	return u
}

// FillDownRequest body para POST /api/sessions/:id/rows/fill-down.
type FillDownRequest struct {
	Index int    `json:"index"`
	Field string `json:"field"` // number | location
	Value string `json:"value"`
}

// SessionResponse estado observable de una sesión de captura: el estado del
// ciclo más el eco del formulario para que la consola pueda rehidratarse.
type SessionResponse struct {
	SessionID       string                `json:"session_id"`
	State           string                `json:"state"`
	Type            string                `json:"type,omitempty"`
	Product         *ChooseProductRequest `json:"product,omitempty"`
	FromWarehouseID int64                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64                 `json:"to_warehouse_id,omitempty"`
	ReferenceNumber string                `json:"reference_number,omitempty"`
	Amount          *decimal.Decimal      `json:"amount,omitempty"`
	Normal          *NormalRowDTO         `json:"normal,omitempty"`
	BatchRows       []BatchRowDTO         `json:"batch_rows,omitempty"`
	SerialRows      []SerialRowDTO        `json:"serial_rows,omitempty"`
	LastError       string                `json:"last_error,omitempty"`
}

// NewSessionResponse arma la respuesta desde la sesión.
func NewSessionResponse(s *session.Session) SessionResponse {
	in := s.Input()
	resp := SessionResponse{
		SessionID:       s.ID(),
		State:           string(s.State()),
		Type:            in.Type,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		ReferenceNumber: in.ReferenceNumber,
		Amount:          in.Amount,
	}
	if in.Product.ID != 0 {
		p := in.Product
		resp.Product = &ChooseProductRequest{
			ID:              p.ID,
			SKU:             p.SKU,
			Name:            p.Name,
			BatchControlled: p.BatchControlled,
			Serialized:      p.Serialized,
			AverageCost:     p.AverageCost,
			UnitMeasure:     p.UnitMeasure,
		}
	}
	if in.NormalRow != nil {
		resp.Normal = &NormalRowDTO{
			Quantity:     in.NormalRow.Quantity,
			LocationCode: in.NormalRow.LocationCode,
			Notes:        in.NormalRow.Notes,
		}
	}
	for _, row := range in.BatchRows {
		resp.BatchRows = append(resp.BatchRows, BatchRowDTO{
			BatchID:         row.BatchID,
			BatchNumber:     row.BatchNumber,
			ManufactureDate: row.ManufactureDate,
			ExpirationDate:  row.ExpirationDate,
			Quantity:        row.Quantity,
			LocationCode:    row.LocationCode,
			Notes:           row.Notes,
		})
	}
	for _, row := range in.SerialRows {
		resp.SerialRows = append(resp.SerialRows, SerialRowDTO{
			SerialID:     row.SerialID,
			SerialNumber: row.SerialNumber,
			LocationCode: row.LocationCode,
			Notes:        row.Notes,
		})
	}
	if err := s.LastError(); err != nil {
		resp.LastError = err.Error()
	}
	return resp
}

// ReceiptResponse acuse de un movimiento aceptado.
type ReceiptResponse struct {
	MovementID      int64     `json:"movement_id"`
	MovementDate    time.Time `json:"movement_date"`
	ReferenceNumber string    `json:"reference_number"`
}

// NewReceiptResponse arma el acuse desde la entidad.
func NewReceiptResponse(r *entity.MovementReceipt) ReceiptResponse {
	return ReceiptResponse{
		MovementID:      r.MovementID,
		MovementDate:    r.MovementDate,
		ReferenceNumber: r.ReferenceNumber,
	}
}
