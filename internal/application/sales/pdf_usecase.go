package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// SaleLineForPDF línea de la factura con el nombre de producto resuelto.
type SaleLineForPDF struct {
	SKU         string
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// InvoicePDFGenerator puerto para renderizar la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []SaleLineForPDF) ([]byte, error)
}

// PDFUseCase genera el PDF de una venta.
type PDFUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{saleRepo: saleRepo, customerRepo: customerRepo, productRepo: productRepo, generator: generator}
}

// GenerateSalePDF arma los datos de la factura y delega el render al generador.
func (uc *PDFUseCase) GenerateSalePDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	lines := make([]SaleLineForPDF, 0, len(items))
	for _, it := range items {
		line := SaleLineForPDF{
			Description: it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
		if p, err := uc.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			line.SKU = p.SKU
			line.Description = p.Name
		}
		lines = append(lines, line)
	}
	return uc.generator.GenerateInvoicePDF(ctx, sale, customer, lines)
}
