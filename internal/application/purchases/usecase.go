package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	appinventory "github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	dominventory "github.com/knockFahim/inventory-management-system-sub001/internal/domain/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// UseCase implementa el ciclo de vida de compras. A diferencia de ventas,
// la orden se crea sin efecto en stock; la mercancía entra al recibirla.
type UseCase struct {
	txRunner     PurchaseTxRunner
	stock        StockMutator
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner PurchaseTxRunner,
	stock StockMutator,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		stock:        stock,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// Create crea la orden de compra en PENDING con sus ítems (sin tocar stock).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	purchaseID := uuid.New().String()
	purchase := &entity.Purchase{
		ID:          purchaseID,
		// Sufijo del UUID para que dos órdenes en el mismo segundo no colisionen
		OrderNumber: fmt.Sprintf("PO-%d-%s", now.Unix(), purchaseID[:8]),
		SupplierID:  in.SupplierID,
		Status:      entity.PurchaseStatusPending,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items := make([]*entity.PurchaseItem, 0, len(in.Items))
	for _, reqItem := range in.Items {
		items = append(items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchaseID,
			ProductID:  reqItem.ProductID,
			Quantity:   reqItem.Quantity,
			UnitCost:   reqItem.UnitCost,
			LineTotal:  reqItem.UnitCost.Mul(decimal.NewFromInt(reqItem.Quantity)),
		})
	}
	purchase.ComputeTotal(items)

	err = uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockLedgerRepository,
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range items {
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, items), nil
}

// Receive marca una orden PENDING como RECEIVED: por cada línea entra stock
// (tipo PURCHASE, referencia la orden) y se recalcula el costo promedio
// ponderado del producto, todo en una sola transacción.
func (uc *UseCase) Receive(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	var items []*entity.PurchaseItem
	err := uc.txRunner.RunPurchase(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var err error
		purchase, err = purchaseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status != entity.PurchaseStatusPending {
			return domain.ErrInvalidState
		}
		items, err = purchaseRepo.GetItems(id)
		if err != nil {
			return err
		}
		for _, item := range items {
			updated, err := uc.stock.ApplyDeltaInTx(ledgerRepo, productRepo, appinventory.DeltaInput{
				ProductID: item.ProductID,
				Delta:     item.Quantity,
				Type:      entity.LedgerTypePurchase,
				Reference: purchase.OrderNumber,
				UserID:    userID,
			})
			if err != nil {
				return err
			}
			// Costo promedio ponderado con la cantidad previa a esta entrada
			prevQty := updated.Quantity - item.Quantity
			newCost := dominventory.WeightedAverageCost(prevQty, updated.CostPrice, item.Quantity, item.UnitCost)
			if err := productRepo.UpdateCost(item.ProductID, newCost); err != nil {
				return err
			}
		}
		if err := purchaseRepo.UpdateStatus(id, entity.PurchaseStatusReceived); err != nil {
			return err
		}
		purchase.Status = entity.PurchaseStatusReceived
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, items), nil
}

// Cancel anula una orden PENDING. Como el stock entra solo al recibir,
// no hay nada que compensar. RECEIVED es terminal (ErrInvalidState).
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	err := uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockLedgerRepository,
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var err error
		purchase, err = purchaseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status != entity.PurchaseStatusPending {
			return domain.ErrInvalidState
		}
		if err := purchaseRepo.UpdateStatus(id, entity.PurchaseStatusCancelled); err != nil {
			return err
		}
		purchase.Status = entity.PurchaseStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, nil), nil
}

// Delete elimina una orden que no esté RECEIVED.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunPurchase(ctx, func(
		_ repository.StockLedgerRepository,
		_ repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		purchase, err := purchaseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status == entity.PurchaseStatusReceived {
			return domain.ErrInvalidState
		}
		return purchaseRepo.Delete(id)
	})
}

// Get obtiene una orden por ID con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toResponse(purchase, items), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseListResponse{Purchases: make([]*dto.PurchaseResponse, 0, len(list)), Limit: limit, Offset: offset}
	for _, p := range list {
		out.Purchases = append(out.Purchases, toResponse(p, nil))
	}
	return out, nil
}

func toResponse(purchase *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:          purchase.ID,
		OrderNumber: purchase.OrderNumber,
		SupplierID:  purchase.SupplierID,
		Status:      purchase.Status,
		Total:       purchase.Total,
		Notes:       purchase.Notes,
		Items:       make([]dto.PurchaseItemResponse, 0, len(items)),
		CreatedBy:   purchase.CreatedBy,
		CreatedAt:   purchase.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
