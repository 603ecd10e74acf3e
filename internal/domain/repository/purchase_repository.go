package repository

import "github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase y sus ítems.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	GetByOrderNumber(orderNumber string) (*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	UpdateStatus(id, status string) error
	List(status string, limit, offset int) ([]*entity.Purchase, error)
	Delete(id string) error
}
