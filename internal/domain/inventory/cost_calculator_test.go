package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	// (10*10 + 10*20) / 20 = 15
	got := inventory.WeightedAverageCost(10, decimal.NewFromInt(10), 10, decimal.NewFromInt(20))
	assert.True(t, decimal.NewFromInt(15).Equal(got), "got %s", got)
}

func TestWeightedAverageCost_SinStockPrevio(t *testing.T) {
	// Sin existencias previas el costo es directamente el de la entrada
	got := inventory.WeightedAverageCost(0, decimal.Zero, 5, decimal.NewFromInt(7))
	assert.True(t, decimal.NewFromInt(7).Equal(got), "got %s", got)
}

func TestWeightedAverageCost_SumaCero(t *testing.T) {
	got := inventory.WeightedAverageCost(0, decimal.NewFromInt(10), 0, decimal.NewFromInt(20))
	assert.True(t, got.IsZero())
}
