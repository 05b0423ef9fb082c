package movement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// BuildInput es el snapshot explícito desde el cual se construye una solicitud
// de movimiento: producto seleccionado, filas digitadas, fechas, monto
// agregado y ubicaciones conocidas de la bodega activa. No referencia estado
// de presentación.
type BuildInput struct {
	Type            string // entity.MovementTypeIN, OUT, TRF, ADJ
	Product         entity.Product
	FromWarehouseID int64 // 0 = sin seleccionar
	ToWarehouseID   int64 // 0 = sin seleccionar
	ReferenceNumber string
	MovementDate    time.Time
	Amount          *decimal.Decimal // monto agregado del movimiento (opcional)
	Locations       []entity.Location

	// Filas según el modo de seguimiento del producto (solo aplica una).
	NormalRow  *NormalRow
	BatchRows  []BatchRow
	SerialRows []SerialRow
}

type lineBuilder func(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error)

// Despacho explícito de las 12 combinaciones (tipo × modo de línea). Cada
// combinación tiene su constructor; agregar un tipo o modo nuevo obliga a
// completar esta tabla.
var lineBuilders = map[string]map[string]lineBuilder{
	entity.LineModeNormal: {
		entity.MovementTypeIN:  buildNormalLine,
		entity.MovementTypeOUT: buildNormalLine,
		entity.MovementTypeTRF: buildNormalLine,
		entity.MovementTypeADJ: buildNormalLine,
	},
	entity.LineModeBatch: {
		entity.MovementTypeIN:  buildBatchReceiveLines,
		entity.MovementTypeOUT: buildBatchSelectLines,
		entity.MovementTypeTRF: buildBatchSelectLines,
		entity.MovementTypeADJ: buildBatchSelectLines,
	},
	entity.LineModeSerial: {
		entity.MovementTypeIN:  buildSerialReceiveLines,
		entity.MovementTypeOUT: buildSerialSelectLines,
		entity.MovementTypeTRF: buildSerialSelectLines,
		entity.MovementTypeADJ: buildSerialSelectLines,
	},
}

// Build compone y valida una solicitud de movimiento a partir del snapshot.
// Es una función pura: no llama red ni muta el snapshot. Si la validación
// local falla, no se construye nada y el error indica la causa.
func Build(in BuildInput) (*entity.MovementRequest, error) {
	policy, err := PolicyFor(in.Type)
	if err != nil {
		return nil, err
	}
	if in.MovementDate.IsZero() {
		return nil, fmt.Errorf("%w: fecha de movimiento requerida", domain.ErrInvalidInput)
	}

	var from, to *int64
	if policy.RequiresSource {
		if in.FromWarehouseID == 0 {
			return nil, fmt.Errorf("%w: bodega origen", domain.ErrMissingWarehouse)
		}
		from = &in.FromWarehouseID
	}
	if policy.RequiresDestination {
		if in.ToWarehouseID == 0 {
			return nil, fmt.Errorf("%w: bodega destino", domain.ErrMissingWarehouse)
		}
		to = &in.ToWarehouseID
	}
	if in.Type == entity.MovementTypeTRF && in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrSameWarehouse
	}

	mode := ResolveTrackingMode(in.Product.BatchControlled, in.Product.Serialized)
	lineMode := LineModeFor(mode)

	ix := NewLocationIndex(in.Locations)
	lines, err := lineBuilders[lineMode][in.Type](in, ix)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyLines
	}
	for i, ln := range lines {
		if ln.Quantity.IsNegative() && !policy.AllowNegative {
			return nil, fmt.Errorf("%w (fila %d)", domain.ErrNegativeQuantity, i+1)
		}
	}

	stampUnitCost(lines, in, lineMode)

	return &entity.MovementRequest{
		Type:               in.Type,
		LineMode:           lineMode,
		FromWarehouseID:    from,
		ToWarehouseID:      to,
		ReferenceNumber:    strings.TrimSpace(in.ReferenceNumber),
		MovementDate:       in.MovementDate,
		Lines:              lines,
		AutoCreateBatch:    policy.AutoCreateBatch,
		AutoCreateSerial:   policy.AutoCreateSerial,
		AutoCreateLocation: policy.AutoCreateLocation,
	}, nil
}

// stampUnitCost asigna el costo unitario prorrateado a cada línea.
// Excepciones: las salidas de serial no llevan costo, y una línea de ajuste
// con cantidad negativa tampoco (una disminución no tiene precio de compra).
func stampUnitCost(lines []entity.MovementLine, in BuildInput, lineMode string) {
	if lineMode == entity.LineModeSerial && in.Type == entity.MovementTypeOUT {
		return
	}
	total := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.Quantity)
	}
	unit := AllocateUnitCost(in.Amount, total, in.Product.AverageCost)
	for i := range lines {
		if lines[i].Quantity.IsNegative() {
			continue
		}
		c := unit
		lines[i].UnitCost = &c
	}
}

// buildNormalLine construye la única línea de un producto sin seguimiento.
func buildNormalLine(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error) {
	if in.NormalRow == nil {
		return nil, domain.ErrEmptyLines
	}
	row := in.NormalRow
	if row.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: cantidad requerida", domain.ErrInvalidInput)
	}
	return []entity.MovementLine{{
		ProductID:    in.Product.ID,
		Quantity:     row.Quantity,
		LocationCode: ix.CanonicalCode(row.LocationCode),
		Notes:        row.Notes,
	}}, nil
}

// buildBatchReceiveLines construye una línea por fila con cantidad positiva.
// Cada línea lleva el código del lote nuevo y sus fechas; una fecha no
// diligenciada toma la fecha del movimiento.
func buildBatchReceiveLines(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error) {
	lines := make([]entity.MovementLine, 0, len(in.BatchRows))
	for i, row := range in.BatchRows {
		if !row.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		number := strings.TrimSpace(row.BatchNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: lote sin código (fila %d)", domain.ErrInvalidInput, i+1)
		}
		mfg := in.MovementDate
		if row.ManufactureDate != nil {
			mfg = *row.ManufactureDate
		}
		exp := in.MovementDate
		if row.ExpirationDate != nil {
			exp = *row.ExpirationDate
		}
		lines = append(lines, entity.MovementLine{
			ProductID:            in.Product.ID,
			Quantity:             row.Quantity,
			BatchNumber:          number,
			BatchManufactureDate: &mfg,
			BatchExpirationDate:  &exp,
			LocationCode:         ix.CanonicalCode(row.LocationCode),
			Notes:                row.Notes,
		})
	}
	return lines, nil
}

// buildBatchSelectLines construye una línea por fila que selecciona un lote
// existente. Rechaza el mismo lote repetido bajo la misma estantería destino
// para no asignar dos veces el mismo inventario en filas duplicadas.
func buildBatchSelectLines(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error) {
	type batchShelf struct {
		batchID int64
		shelf   string
	}
	seen := make(map[batchShelf]bool, len(in.BatchRows))
	lines := make([]entity.MovementLine, 0, len(in.BatchRows))
	for i, row := range in.BatchRows {
		if row.BatchID == 0 {
			return nil, fmt.Errorf("%w (fila %d)", domain.ErrMissingBatch, i+1)
		}
		if row.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: cantidad requerida (fila %d)", domain.ErrInvalidInput, i+1)
		}
		key := batchShelf{batchID: row.BatchID, shelf: NormalizeShelfCode(row.LocationCode)}
		if seen[key] {
			return nil, fmt.Errorf("%w (fila %d)", domain.ErrDuplicateBatchRow, i+1)
		}
		seen[key] = true
		id := row.BatchID
		lines = append(lines, entity.MovementLine{
			ProductID:    in.Product.ID,
			Quantity:     row.Quantity,
			BatchID:      &id,
			LocationCode: ix.CanonicalCode(row.LocationCode),
			Notes:        row.Notes,
		})
	}
	return lines, nil
}

// buildSerialReceiveLines construye una línea de cantidad 1 por cada fila
// digitada; el código del serial nuevo es obligatorio.
func buildSerialReceiveLines(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error) {
	lines := make([]entity.MovementLine, 0, len(in.SerialRows))
	for i, row := range in.SerialRows {
		number := strings.TrimSpace(row.SerialNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: serial sin código (fila %d)", domain.ErrInvalidInput, i+1)
		}
		lines = append(lines, entity.MovementLine{
			ProductID:    in.Product.ID,
			Quantity:     decimal.NewFromInt(1),
			SerialNumber: number,
			LocationCode: ix.CanonicalCode(row.LocationCode),
			Notes:        row.Notes,
		})
	}
	return lines, nil
}

// buildSerialSelectLines construye una línea de cantidad 1 por cada unidad
// existente seleccionada. Un serial no puede aparecer dos veces.
func buildSerialSelectLines(in BuildInput, ix *LocationIndex) ([]entity.MovementLine, error) {
	seen := make(map[int64]bool, len(in.SerialRows))
	lines := make([]entity.MovementLine, 0, len(in.SerialRows))
	for i, row := range in.SerialRows {
		if row.SerialID == 0 {
			return nil, fmt.Errorf("%w (fila %d)", domain.ErrMissingSerial, i+1)
		}
		if seen[row.SerialID] {
			return nil, fmt.Errorf("%w: serial repetido (fila %d)", domain.ErrInvalidInput, i+1)
		}
		seen[row.SerialID] = true
		id := row.SerialID
		lines = append(lines, entity.MovementLine{
			ProductID:    in.Product.ID,
			Quantity:     decimal.NewFromInt(1),
			SerialID:     &id,
			LocationCode: ix.CanonicalCode(row.LocationCode),
			Notes:        row.Notes,
		})
	}
	return lines, nil
}
