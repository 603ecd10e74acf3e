package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en el request.
type SaleItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // nil = precio de lista del producto
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	Items       []SaleItemRequest `json:"items"`
	DiscountPct decimal.Decimal   `json:"discount_pct"`
	TaxPct      decimal.Decimal   `json:"tax_pct"`
	Notes       string            `json:"notes,omitempty"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse respuesta de venta con ítems.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id"`
	Status        string             `json:"status"`
	DiscountPct   decimal.Decimal    `json:"discount_pct"`
	TaxPct        decimal.Decimal    `json:"tax_pct"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales  []*SaleResponse `json:"sales"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
