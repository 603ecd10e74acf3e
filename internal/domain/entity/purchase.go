package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una compra.
const (
	PurchaseStatusPending   = "PENDING"   // orden creada, sin efecto en stock
	PurchaseStatusReceived  = "RECEIVED"  // mercancía recibida, stock sumado (terminal)
	PurchaseStatusCancelled = "CANCELLED" // anulada antes de recibir
)

// Purchase representa una orden de compra a un proveedor (agregado con sus ítems).
// El stock entra al inventario al recibir la orden, no al crearla.
type Purchase struct {
	ID          string
	OrderNumber string // único
	SupplierID  string
	Status      string // PENDING, RECEIVED, CANCELLED
	Total       decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseItem es una línea de la orden de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	UnitCost   decimal.Decimal
	LineTotal  decimal.Decimal // Quantity * UnitCost
}

// IsTerminal indica si la orden ya no admite cambios.
func (p *Purchase) IsTerminal() bool {
	return p.Status == PurchaseStatusReceived || p.Status == PurchaseStatusCancelled
}

// ComputeTotal recalcula el total de la orden desde los ítems.
func (p *Purchase) ComputeTotal(items []*PurchaseItem) {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	p.Total = total.Round(2)
}
