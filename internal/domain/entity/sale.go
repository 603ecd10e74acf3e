package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una venta.
const (
	SaleStatusPending   = "PENDING"   // creada, stock ya descontado, editable/cancelable
	SaleStatusCompleted = "COMPLETED" // terminal: ítems y efectos de stock congelados
	SaleStatusCancelled = "CANCELLED" // stock restituido vía entradas compensatorias
)

// Sale representa la cabecera de una venta (agregado con sus ítems).
type Sale struct {
	ID            string
	InvoiceNumber string // único
	CustomerID    string
	Status        string          // PENDING, COMPLETED, CANCELLED
	DiscountPct   decimal.Decimal // porcentaje 0..100
	TaxPct        decimal.Decimal // porcentaje 0..100
	Subtotal      decimal.Decimal // suma de totales de línea
	Total         decimal.Decimal // subtotal ajustado por descuento e impuesto
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem es una línea de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Quantity * UnitPrice
}

// IsTerminal indica si la venta ya no admite mutaciones de stock.
func (s *Sale) IsTerminal() bool {
	return s.Status == SaleStatusCompleted || s.Status == SaleStatusCancelled
}

// ComputeTotals recalcula Subtotal y Total desde los ítems.
// El total siempre se deriva de las líneas: subtotal * (1 - descuento%) * (1 + impuesto%).
func (s *Sale) ComputeTotals(items []*SaleItem) {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	hundred := decimal.NewFromInt(100)
	discounted := subtotal.Mul(hundred.Sub(s.DiscountPct)).Div(hundred)
	s.Subtotal = subtotal
	s.Total = discounted.Mul(hundred.Add(s.TaxPct)).Div(hundred).Round(2)
}
