package movement

import (
	"strings"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// LocationIndex resuelve códigos de estantería digitados contra las
// ubicaciones conocidas de la bodega activa. No crea estado: una ubicación no
// resuelta viaja como código suelto y el servicio la crea de forma diferida si
// la política del movimiento lo permite.
type LocationIndex struct {
	byCode map[string]entity.Location
}

// NewLocationIndex construye el índice a partir del snapshot de ubicaciones.
// Solo indexa las que permiten almacenar inventario.
func NewLocationIndex(locations []entity.Location) *LocationIndex {
	ix := &LocationIndex{byCode: make(map[string]entity.Location, len(locations))}
	for _, loc := range locations {
		if !loc.AllowsStock {
			continue
		}
		ix.byCode[NormalizeShelfCode(loc.Code)] = loc
	}
	return ix
}

// Resolve devuelve la ubicación conocida para el código dado, o false si el
// código no existe en la bodega (ubicación "no resuelta").
func (ix *LocationIndex) Resolve(code string) (entity.Location, bool) {
	loc, ok := ix.byCode[NormalizeShelfCode(code)]
	return loc, ok
}

// CanonicalCode devuelve el código tal como lo conoce el catálogo si el código
// resuelve, o el código digitado (normalizado) si no.
func (ix *LocationIndex) CanonicalCode(code string) string {
	if loc, ok := ix.Resolve(code); ok {
		return loc.Code
	}
	return strings.TrimSpace(code)
}

// NormalizeShelfCode normaliza un código de estantería para comparación:
// sin espacios en los extremos y en mayúsculas.
func NormalizeShelfCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
