package inventory

import (
	"context"
	"time"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// LedgerUseCase consultas de solo lectura sobre el ledger de stock.
type LedgerUseCase struct {
	ledgerRepo  repository.StockLedgerRepository
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(ledgerRepo repository.StockLedgerRepository, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo, productRepo: productRepo}
}

// ListByProduct lista el historial de movimientos de un producto en un rango de fechas.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) (*dto.LedgerListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerListResponse{Entries: make([]*dto.LedgerEntryResponse, 0, len(entries)), Limit: limit, Offset: offset}
	for _, e := range entries {
		out.Entries = append(out.Entries, &dto.LedgerEntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Delta:     e.Delta,
			Type:      e.Type,
			Reference: e.Reference,
			Notes:     e.Notes,
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
