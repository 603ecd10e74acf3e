package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// ProductUseCase CRUD de productos. La cantidad inicial se persiste junto con
// una entrada ADJUSTMENT en el ledger para que el historial parta de cero;
// producto y asiento se escriben en la misma transacción.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto nuevo. SKU único; cantidad inicial no negativa.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		CategoryID:  in.CategoryID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// Producto y asiento inicial en una sola transacción: si el asiento falla,
	// el producto no queda persistido a medias.
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.Quantity > 0 {
			return ledgerRepo.Create(&entity.StockLedgerEntry{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Delta:     in.Quantity,
				Type:      entity.LedgerTypeAdjustment,
				Reference: "INITIAL " + product.SKU,
				Notes:     "stock inicial",
				CreatedBy: userID,
				CreatedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza campos editables. Quantity no se toca por esta vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.CategoryID = *in.CategoryID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda por nombre/SKU y paginación.
func (uc *ProductUseCase) List(search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Products: make([]*dto.ProductResponse, 0, len(list)), Limit: limit, Offset: offset}
	for _, p := range list {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock lista productos en o por debajo de su umbral mínimo.
func (uc *ProductUseCase) ListLowStock(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListLowStock(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Products: make([]*dto.ProductResponse, 0, len(list)), Limit: limit, Offset: offset}
	for _, p := range list {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// GetOwner devuelve el UserID propietario del producto (chequeo de ownership en handlers).
func (uc *ProductUseCase) GetOwner(id string) (string, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}
	return product.CreatedBy, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		LowStock:    p.IsLowStock(),
		CategoryID:  p.CategoryID,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
