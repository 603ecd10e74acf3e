package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// StockService es el único camino sancionado para cambiar Product.Quantity.
// Cada aplicación de delta actualiza la cantidad y agrega exactamente una
// entrada al ledger, ambas escrituras dentro de la transacción del caller.
type StockService struct {
	txRunner TxRunner
}

// NewStockService construye el servicio.
func NewStockService(txRunner TxRunner) *StockService {
	return &StockService{txRunner: txRunner}
}

// DeltaInput entrada para aplicar un cambio de stock.
type DeltaInput struct {
	ProductID string
	Delta     int64  // positivo entrada, negativo salida; nunca cero
	Type      string // SALE, PURCHASE, ADJUSTMENT, RETURN
	Reference string // factura/orden de origen
	Notes     string
	UserID    string
}

// ApplyDeltaInTx aplica un delta usando los repositorios del caller (misma transacción).
// Bloquea la fila del producto (SELECT FOR UPDATE), verifica que la cantidad
// resultante no sea negativa, actualiza la cantidad y agrega la entrada al ledger.
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
func (s *StockService) ApplyDeltaInTx(
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	in DeltaInput,
) (*entity.Product, error) {
	if in.Delta == 0 || !entity.ValidLedgerType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	// Bloquea la fila del producto para evitar condiciones de carrera
	product, err := productRepo.GetByIDForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	newQty := product.Quantity + in.Delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateQuantity(in.ProductID, newQty); err != nil {
		return nil, err
	}
	entry := &entity.StockLedgerEntry{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Type:      in.Type,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedBy: in.UserID,
		CreatedAt: time.Now(),
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	product.Quantity = newQty
	return product, nil
}

// ApplyDelta aplica un delta en su propia transacción (ajustes manuales y devoluciones).
// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
func (s *StockService) ApplyDelta(ctx context.Context, in DeltaInput) (*entity.Product, error) {
	var updated *entity.Product
	err := s.txRunner.Run(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := s.ApplyDeltaInTx(ledgerRepo, productRepo, in)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
