package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores de validación local bloquean el envío y se corrigen en el formulario;
// ErrRemoteService agrupa cualquier falla del servicio de bodega (transporte,
// respuesta no exitosa o cuerpo ilegible).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmptyLines         = errors.New("el movimiento no tiene líneas")
	ErrMissingWarehouse   = errors.New("bodega requerida no seleccionada")
	ErrSameWarehouse      = errors.New("la bodega destino debe ser distinta a la de origen")
	ErrNegativeQuantity   = errors.New("cantidad negativa no permitida para este tipo de movimiento")
	ErrMissingBatch       = errors.New("línea de lote sin lote existente seleccionado")
	ErrMissingSerial      = errors.New("línea de serial sin unidad existente seleccionada")
	ErrDuplicateBatchRow  = errors.New("lote repetido para la misma estantería destino")
	ErrInvalidTransition  = errors.New("transición de estado no permitida en la sesión")
	ErrSubmissionInFlight = errors.New("ya hay un envío en curso para esta sesión")
	ErrSessionNotFound    = errors.New("sesión de captura no encontrada")
	ErrRemoteService      = errors.New("el servicio de bodega respondió con error")
)
