package movement

import "github.com/shopspring/decimal"

// AllocateUnitCost deriva el costo unitario de un movimiento a partir del
// monto agregado y la cantidad total de todas sus líneas.
//
// Si hay monto (> 0) y cantidad total (> 0), el costo unitario es monto/total
// y se estampa idéntico en todas las líneas del movimiento, sin ponderar por
// la cantidad propia de cada línea. Si no hay monto o la cantidad total es
// cero, se usa el costo promedio histórico del producto.
//
// El prorrateo uniforme replica el comportamiento acordado con el dueño del
// sistema; cualquier cambio de política se hace aquí y en ningún otro lugar.
func AllocateUnitCost(amount *decimal.Decimal, totalQty, averageCost decimal.Decimal) decimal.Decimal {
	if amount != nil && amount.GreaterThan(decimal.Zero) && totalQty.GreaterThan(decimal.Zero) {
		return amount.Div(totalQty)
	}
	return averageCost
}
