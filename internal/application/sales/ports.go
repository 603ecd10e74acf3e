package sales

import (
	"context"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye
// repos de stock y de ventas. Una mutación de venta (crear, cancelar, borrar)
// es todo-o-nada: cualquier línea que falle revierte la operación completa.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockMutator interfaz para integrar ventas con el motor de stock.
// ApplyDeltaInTx aplica un delta usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockMutator interface {
	ApplyDeltaInTx(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		in inventory.DeltaInput,
	) (*entity.Product, error)
}
