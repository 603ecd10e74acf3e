package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	sum := currentQty + inQty
	if sum <= 0 {
		return decimal.Zero
	}
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(decimal.NewFromInt(sum))
}
