// Package movement implementa el motor de construcción y validación de
// movimientos de inventario: a partir de una acción de negocio, el modo de
// seguimiento del producto y las filas digitadas por el operario, compone una
// solicitud estructuralmente válida, con costos prorrateados y estanterías
// resueltas, lista para entregar al servicio de bodega.
//
// Todo el paquete es puro: opera sobre un snapshot explícito y nunca toca red
// ni estado compartido.
package movement

import "github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"

// ResolveTrackingMode clasifica un producto en exactamente un modo de
// seguimiento. Si el producto está marcado por lotes, el lote manda aunque
// también esté marcado como serializado. Nunca falla.
func ResolveTrackingMode(batchControlled, serialized bool) string {
	switch {
	case batchControlled:
		return entity.TrackingBatch
	case serialized:
		return entity.TrackingSerial
	default:
		return entity.TrackingNone
	}
}

// LineModeFor devuelve el modo de línea del contrato según el modo de seguimiento.
func LineModeFor(trackingMode string) string {
	switch trackingMode {
	case entity.TrackingBatch:
		return entity.LineModeBatch
	case entity.TrackingSerial:
		return entity.LineModeSerial
	default:
		return entity.LineModeNormal
	}
}
