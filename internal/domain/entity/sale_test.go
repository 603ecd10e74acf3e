package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

func item(qty int64, price int64) *entity.SaleItem {
	p := decimal.NewFromInt(price)
	return &entity.SaleItem{
		Quantity:  qty,
		UnitPrice: p,
		LineTotal: p.Mul(decimal.NewFromInt(qty)),
	}
}

// El total siempre se deriva de las líneas: cambiar los ítems y recalcular
// debe producir los nuevos totales, sin importar lo que hubiera antes.
func TestComputeTotals_DesdeLineas(t *testing.T) {
	s := &entity.Sale{
		DiscountPct: decimal.NewFromInt(10),
		TaxPct:      decimal.NewFromInt(19),
		// Valores basura que deben ser pisados por el recálculo
		Subtotal: decimal.NewFromInt(999),
		Total:    decimal.NewFromInt(999),
	}
	s.ComputeTotals([]*entity.SaleItem{item(2, 100), item(2, 50)})

	assert.True(t, decimal.NewFromInt(300).Equal(s.Subtotal), "subtotal: %s", s.Subtotal)
	// 300 * 0.90 * 1.19 = 321.30
	assert.True(t, decimal.NewFromFloat(321.30).Equal(s.Total), "total: %s", s.Total)
}

func TestComputeTotals_SinDescuentoNiImpuesto(t *testing.T) {
	s := &entity.Sale{}
	s.ComputeTotals([]*entity.SaleItem{item(3, 40)})

	assert.True(t, decimal.NewFromInt(120).Equal(s.Subtotal))
	assert.True(t, decimal.NewFromInt(120).Equal(s.Total))
}

func TestComputeTotals_SinItems(t *testing.T) {
	s := &entity.Sale{DiscountPct: decimal.NewFromInt(50)}
	s.ComputeTotals(nil)

	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.Total.IsZero())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&entity.Sale{Status: entity.SaleStatusPending}).IsTerminal())
	assert.True(t, (&entity.Sale{Status: entity.SaleStatusCompleted}).IsTerminal())
	assert.True(t, (&entity.Sale{Status: entity.SaleStatusCancelled}).IsTerminal())
}
