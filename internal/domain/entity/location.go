package entity

// Location representa una estantería/ubicación conocida dentro de una bodega.
type Location struct {
	ID          int64
	WarehouseID int64
	Code        string // código humano (ej. "A-01-03")
	AllowsStock bool   // permite almacenar inventario
}
