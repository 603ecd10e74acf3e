package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// UseCase implementa el ciclo de vida de ventas: crear descuenta stock línea
// por línea, cancelar/borrar una venta PENDING lo restituye con entradas
// compensatorias, y una venta COMPLETED queda congelada.
type UseCase struct {
	txRunner     SaleTxRunner
	stock        StockMutator
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner SaleTxRunner,
	stock StockMutator,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		stock:        stock,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

var hundred = decimal.NewFromInt(100)

// Create crea la venta, descuenta stock por cada línea (tipo SALE, referencia
// la factura) y persiste cabecera e ítems, todo en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountPct.LessThan(decimal.Zero) || in.DiscountPct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxPct.LessThan(decimal.Zero) || in.TaxPct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice == nil {
			price := product.Price
			item.UnitPrice = &price
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	// Sufijo del UUID para que dos ventas en el mismo segundo no colisionen
	invoiceNumber := fmt.Sprintf("INV-%d-%s", now.Unix(), saleID[:8])

	sale := &entity.Sale{
		ID:            saleID,
		InvoiceNumber: invoiceNumber,
		CustomerID:    in.CustomerID,
		Status:        entity.SaleStatusPending,
		DiscountPct:   in.DiscountPct,
		TaxPct:        in.TaxPct,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := make([]*entity.SaleItem, 0, len(in.Items))
	for _, reqItem := range in.Items {
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: reqItem.ProductID,
			Quantity:  reqItem.Quantity,
			UnitPrice: *reqItem.UnitPrice,
			LineTotal: reqItem.UnitPrice.Mul(decimal.NewFromInt(reqItem.Quantity)),
		})
	}
	// Los totales siempre se recalculan desde las líneas
	sale.ComputeTotals(items)

	// Inicia transacción; Commit si todo ok, Rollback si algo falla
	err = uc.txRunner.RunSale(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Por cada línea, salida de stock con referencia a la factura.
		// Si el motor de stock retorna error (ej: sin stock), rollback completo.
		for _, item := range items {
			if _, err := uc.stock.ApplyDeltaInTx(ledgerRepo, productRepo, inventory.DeltaInput{
				ProductID: item.ProductID,
				Delta:     -item.Quantity,
				Type:      entity.LedgerTypeSale,
				Reference: invoiceNumber,
				UserID:    userID,
			}); err != nil {
				return err
			}
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

// Complete marca una venta PENDING como COMPLETED (terminal, sin efecto en stock:
// el descuento ya ocurrió al crearla).
func (uc *UseCase) Complete(ctx context.Context, id string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var items []*entity.SaleItem
	err := uc.txRunner.RunSale(ctx, func(
		_ repository.StockLedgerRepository,
		_ repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusPending {
			return domain.ErrInvalidState
		}
		if err := saleRepo.UpdateStatus(id, entity.SaleStatusCompleted); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCompleted
		items, err = saleRepo.GetItems(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

// Cancel anula una venta PENDING: por cada línea aplica un delta positivo de
// tipo ADJUSTMENT referenciando la factura y la acción, y marca CANCELLED.
// COMPLETED o CANCELLED retornan ErrInvalidState sin escribir nada.
func (uc *UseCase) Cancel(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var items []*entity.SaleItem
	err := uc.txRunner.RunSale(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusPending {
			return domain.ErrInvalidState
		}
		items, err = saleRepo.GetItems(id)
		if err != nil {
			return err
		}
		if err := uc.restoreStock(ledgerRepo, productRepo, sale, items, userID, "CANCEL"); err != nil {
			return err
		}
		if err := saleRepo.UpdateStatus(id, entity.SaleStatusCancelled); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

// Delete elimina una venta. Si está PENDING restituye el stock igual que una
// cancelación; una venta COMPLETED nunca se borra (ErrInvalidState). Una
// CANCELLED puede borrarse sin tocar stock: ya fue compensada.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.txRunner.RunSale(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCompleted {
			return domain.ErrInvalidState
		}
		if sale.Status == entity.SaleStatusPending {
			items, err := saleRepo.GetItems(id)
			if err != nil {
				return err
			}
			if err := uc.restoreStock(ledgerRepo, productRepo, sale, items, userID, "DELETE"); err != nil {
				return err
			}
		}
		return saleRepo.Delete(id)
	})
}

// restoreStock aplica las entradas compensatorias de una venta, línea por línea
// en su orden almacenado (determinismo del ledger).
func (uc *UseCase) restoreStock(
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	sale *entity.Sale,
	items []*entity.SaleItem,
	userID, action string,
) error {
	for _, item := range items {
		if _, err := uc.stock.ApplyDeltaInTx(ledgerRepo, productRepo, inventory.DeltaInput{
			ProductID: item.ProductID,
			Delta:     item.Quantity,
			Type:      entity.LedgerTypeAdjustment,
			Reference: fmt.Sprintf("%s %s", action, sale.InvoiceNumber),
			Notes:     "reversión de venta",
			UserID:    userID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Get obtiene una venta por ID con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toResponse(sale, items), nil
}

// List lista ventas, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Sales: make([]*dto.SaleResponse, 0, len(list)), Limit: limit, Offset: offset}
	for _, s := range list {
		out.Sales = append(out.Sales, toResponse(s, nil))
	}
	return out, nil
}

func toResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerID:    sale.CustomerID,
		Status:        sale.Status,
		DiscountPct:   sale.DiscountPct,
		TaxPct:        sale.TaxPct,
		Subtotal:      sale.Subtotal,
		Total:         sale.Total,
		Notes:         sale.Notes,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
		CreatedBy:     sale.CreatedBy,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
