package movement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/movement"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestAllocateUnitCost_MontoSobreCantidadTotal(t *testing.T) {
	// 100 / 50 = 2, un solo valor para todo el movimiento.
	got := movement.AllocateUnitCost(decPtr("100"), dec("50"), dec("7"))
	assert.True(t, dec("2").Equal(got), "esperaba 2, obtuve %s", got)
}

func TestAllocateUnitCost_SinDerivaDecimal(t *testing.T) {
	// 72 / 60 = 1.2 exacto, sin arrastre de redondeo.
	got := movement.AllocateUnitCost(decPtr("72"), dec("60"), decimal.Zero)
	assert.True(t, dec("1.2").Equal(got), "esperaba 1.2, obtuve %s", got)
}

func TestAllocateUnitCost_SinMontoUsaCostoPromedio(t *testing.T) {
	got := movement.AllocateUnitCost(nil, dec("10"), dec("3.5"))
	assert.True(t, dec("3.5").Equal(got))
}

func TestAllocateUnitCost_MontoCeroUsaCostoPromedio(t *testing.T) {
	got := movement.AllocateUnitCost(decPtr("0"), dec("10"), dec("3.5"))
	assert.True(t, dec("3.5").Equal(got))
}

func TestAllocateUnitCost_CantidadCeroUsaCostoPromedio(t *testing.T) {
	got := movement.AllocateUnitCost(decPtr("100"), decimal.Zero, dec("3.5"))
	assert.True(t, dec("3.5").Equal(got))
}
