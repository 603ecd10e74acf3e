package inventory

import (
	"context"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}
