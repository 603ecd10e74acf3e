package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Quantity solo se modifica vía el motor de stock (movimientos con bloqueo de fila);
// el invariante Quantity >= 0 se garantiza en ese camino.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	CostPrice   decimal.Decimal // costo promedio ponderado
	Quantity    int64           // existencias actuales, nunca negativo
	MinStock    int64           // umbral de stock mínimo (alertas de reposición)
	CategoryID  string
	CreatedBy   string // UserID propietario del registro
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
