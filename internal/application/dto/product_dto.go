package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	CategoryID  string          `json:"category_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// Quantity no es editable por esta vía: se maneja vía movimientos de stock.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
}

// ProductResponse respuesta de producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	LowStock    bool            `json:"low_stock"`
	CategoryID  string          `json:"category_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}
