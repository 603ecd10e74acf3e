package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Type admite ADJUSTMENT o RETURN; SALE y PURCHASE se generan solo desde órdenes.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Delta     int64  `json:"delta"` // positivo entrada, negativo salida
	Type      string `json:"type"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// LedgerEntryResponse entrada del ledger en respuestas.
type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Delta     int64     `json:"delta"`
	Type      string    `json:"type"`
	Reference string    `json:"reference,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerListResponse listado paginado del ledger de un producto.
type LedgerListResponse struct {
	Entries []*LedgerEntryResponse `json:"entries"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}
