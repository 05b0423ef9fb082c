package movement

import (
	"fmt"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// Policy declara, por tipo de movimiento, qué bodegas son obligatorias, si las
// cantidades pueden ser negativas y qué maestras puede crear el servicio al
// aplicar el movimiento.
type Policy struct {
	RequiresSource      bool
	RequiresDestination bool
	AllowNegative       bool
	AutoCreateBatch     bool
	AutoCreateSerial    bool
	AutoCreateLocation  bool
}

// Tabla fija de políticas por tipo de movimiento.
// Solo la recepción origina lotes/seriales nuevos; el traslado puede originar
// una estantería destino; salidas y ajustes nunca crean maestras.
var policies = map[string]Policy{
	entity.MovementTypeIN: {
		RequiresDestination: true,
		AutoCreateBatch:     true,
		AutoCreateSerial:    true,
		AutoCreateLocation:  true,
	},
	entity.MovementTypeOUT: {
		RequiresSource: true,
	},
	entity.MovementTypeTRF: {
		RequiresSource:      true,
		RequiresDestination: true,
		AutoCreateLocation:  true,
	},
	entity.MovementTypeADJ: {
		RequiresSource: true,
		AllowNegative:  true,
	},
}

// PolicyFor devuelve la política del tipo de movimiento dado.
func PolicyFor(movementType string) (Policy, error) {
	p, ok := policies[movementType]
	if !ok {
		return Policy{}, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, movementType)
	}
	return p, nil
}
