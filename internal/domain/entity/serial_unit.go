package entity

// SerialUnit representa una unidad física identificada por serial.
// Siempre equivale a exactamente una unidad de inventario.
type SerialUnit struct {
	ID           int64
	Number       string // código humano del serial
	LocationCode string // última estantería conocida
}
