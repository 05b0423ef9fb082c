package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote existente de un producto con control por lotes.
// LocationCode es la última estantería conocida donde se ubicó el lote.
type Batch struct {
	ID              int64
	Number          string // código humano del lote
	OnHand          decimal.Decimal
	ManufactureDate time.Time
	ExpirationDate  time.Time
	LocationCode    string
}
