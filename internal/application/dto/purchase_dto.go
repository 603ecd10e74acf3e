package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra en el request.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
	Notes      string                `json:"notes,omitempty"`
}

// PurchaseItemResponse línea de compra en la respuesta.
type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PurchaseResponse respuesta de orden de compra con ítems.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	OrderNumber string                 `json:"order_number"`
	SupplierID  string                 `json:"supplier_id"`
	Status      string                 `json:"status"`
	Total       decimal.Decimal        `json:"total"`
	Notes       string                 `json:"notes,omitempty"`
	Items       []PurchaseItemResponse `json:"items"`
	CreatedBy   string                 `json:"created_by,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// PurchaseListResponse listado paginado de compras.
type PurchaseListResponse struct {
	Purchases []*PurchaseResponse `json:"purchases"`
	Limit     int                 `json:"limit"`
	Offset    int                 `json:"offset"`
}
