package repository

import (
	"time"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

// StockLedgerRepository define el puerto de persistencia para el ledger de stock.
// El ledger es append-only: no hay Update ni Delete.
type StockLedgerRepository interface {
	Create(entry *entity.StockLedgerEntry) error
	GetByID(id string) (*entity.StockLedgerEntry, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByReference(reference string) ([]*entity.StockLedgerEntry, error)
}
