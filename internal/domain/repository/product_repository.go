package repository

import (
	"github.com/shopspring/decimal"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity y GetByIDForUpdate son el único camino sancionado para tocar
// Quantity: el motor de stock los invoca bajo transacción con bloqueo de fila.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity fija la cantidad actual (usado por el motor de stock).
	UpdateQuantity(productID string, quantity int64) error
	// UpdateCost actualiza solo el costo promedio (recepción de compras).
	UpdateCost(productID string, cost decimal.Decimal) error
	List(search string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
