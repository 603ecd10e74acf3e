package purchases

import (
	"context"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción que incluye
// repos de stock y de compras.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// StockMutator interfaz para integrar compras con el motor de stock.
type StockMutator interface {
	ApplyDeltaInTx(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		in inventory.DeltaInput,
	) (*entity.Product, error)
}
