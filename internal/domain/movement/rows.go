package movement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// Filas digitadas por el operario, una por tipo de captura. Son el estado
// crudo del formulario; los line builders las convierten en líneas.

// NormalRow captura de un producto sin seguimiento: una sola fila.
type NormalRow struct {
	Quantity     decimal.Decimal
	LocationCode string
	Notes        string
}

// BatchRow captura de una fila de lote. En recepción se digitan los datos del
// lote nuevo (BatchNumber y fechas); en salida/traslado/ajuste se selecciona
// un lote existente por BatchID.
type BatchRow struct {
	BatchID         int64 // > 0 = lote existente seleccionado
	BatchNumber     string
	ManufactureDate *time.Time // nil = usa la fecha del movimiento
	ExpirationDate  *time.Time // nil = usa la fecha del movimiento
	Quantity        decimal.Decimal
	LocationCode    string
	Notes           string
}

// SerialRow captura de una fila de serial. En recepción se digita el código
// nuevo; en salida/traslado/ajuste se selecciona una unidad por SerialID.
// Una fila siempre equivale a cantidad 1.
type SerialRow struct {
	SerialID     int64 // > 0 = unidad existente seleccionada
	SerialNumber string
	LocationCode string
	Notes        string
}

// SerialField identifica una columna de SerialRow que soporta fill-down.
type SerialField string

const (
	SerialFieldNumber   SerialField = "number"
	SerialFieldLocation SerialField = "location"
)

// ResizeSerialRows ajusta la lista de filas de recepción de seriales al total
// declarado por el operario: recorta por el final o agrega filas vacías.
func ResizeSerialRows(rows []SerialRow, total int) []SerialRow {
	if total < 0 {
		total = 0
	}
	if total <= len(rows) {
		return rows[:total]
	}
	out := make([]SerialRow, total)
	copy(out, rows)
	return out
}

// PropagateIfEmpty aplica el valor recién digitado en la fila index y lo
// propaga hacia las filas siguientes cuya misma columna siga vacía, para
// agilizar la captura de seriales consecutivos que comparten estantería.
// Las filas anteriores y las ya diligenciadas no se tocan.
func PropagateIfEmpty(rows []SerialRow, index int, field SerialField, value string) []SerialRow {
	if index < 0 || index >= len(rows) {
		return rows
	}
	setSerialField(&rows[index], field, value)
	for i := index + 1; i < len(rows); i++ {
		if serialField(rows[i], field) == "" {
			setSerialField(&rows[i], field, value)
		}
	}
	return rows
}

func serialField(r SerialRow, field SerialField) string {
	if field == SerialFieldLocation {
		return r.LocationCode
	}
	return r.SerialNumber
}

func setSerialField(r *SerialRow, field SerialField, value string) {
	if field == SerialFieldLocation {
		r.LocationCode = value
		return
	}
	r.SerialNumber = value
}

// SelectableBatches devuelve los lotes aún elegibles para la fila rowIndex:
// excluye cada lote ya escogido en otra fila bajo la misma estantería destino,
// pero permite repetir un lote en filas con estantería distinta. Es una
// diferencia de conjuntos pura sobre el estado actual de las filas; se
// recalcula en cada render, nunca se muta una lista previa.
func SelectableBatches(all []entity.Batch, rows []BatchRow, rowIndex int) []entity.Batch {
	if rowIndex < 0 || rowIndex >= len(rows) {
		return all
	}
	shelf := NormalizeShelfCode(rows[rowIndex].LocationCode)
	taken := make(map[int64]bool, len(rows))
	for i, r := range rows {
		if i == rowIndex || r.BatchID == 0 {
			continue
		}
		if NormalizeShelfCode(r.LocationCode) == shelf {
			taken[r.BatchID] = true
		}
	}
	out := make([]entity.Batch, 0, len(all))
	for _, b := range all {
		if !taken[b.ID] {
			out = append(out, b)
		}
	}
	return out
}

// SelectableSerials devuelve las unidades aún elegibles para la fila rowIndex:
// un serial es una unidad física única, así que queda excluido apenas otra
// fila lo seleccione, sin importar la estantería.
func SelectableSerials(all []entity.SerialUnit, rows []SerialRow, rowIndex int) []entity.SerialUnit {
	taken := make(map[int64]bool, len(rows))
	for i, r := range rows {
		if i == rowIndex || r.SerialID == 0 {
			continue
		}
		taken[r.SerialID] = true
	}
	out := make([]entity.SerialUnit, 0, len(all))
	for _, s := range all {
		if !taken[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
