package repository

import "github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la cabecera de la venta (SELECT FOR UPDATE)
	// para serializar transiciones de estado concurrentes.
	GetByIDForUpdate(id string) (*entity.Sale, error)
	GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	UpdateStatus(id, status string) error
	Update(sale *entity.Sale) error
	List(status string, limit, offset int) ([]*entity.Sale, error)
	// Delete elimina cabecera e ítems (ON DELETE CASCADE en los ítems).
	Delete(id string) error
}
