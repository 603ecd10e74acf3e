package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/dto"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/sales"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base: los repos fake leen y escriben sobre él, y el
// txRunner fake toma un snapshot antes del callback y lo restaura si falla,
// reproduciendo la semántica todo-o-nada de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	ledger    []*entity.StockLedgerEntry
	sales     map[string]*entity.Sale
	saleItems map[string][]*entity.SaleItem
	customers map[string]*entity.Customer
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		sales:     make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
		customers: make(map[string]*entity.Customer),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.ledger = append(c.ledger, s.ledger...)
	for id, sale := range s.sales {
		cp := *sale
		c.sales[id] = &cp
	}
	for id, items := range s.saleItems {
		c.saleItems[id] = append([]*entity.SaleItem(nil), items...)
	}
	for id, cust := range s.customers {
		cp := *cust
		c.customers[id] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.ledger = snap.ledger
	s.sales = snap.sales
	s.saleItems = snap.saleItems
	s.customers = snap.customers
}

// entriesFor filtra el ledger por producto.
func (s *memStore) entriesFor(productID string) []*entity.StockLedgerEntry {
	var out []*entity.StockLedgerEntry
	for _, e := range s.ledger {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// ── Fake ProductRepository ────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostPrice = cost
	return nil
}

func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListLowStock(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

// ── Fake StockLedgerRepository ────────────────────────────────────────────────

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}

func (r *fakeLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) {
	for _, e := range r.s.ledger {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) ListByProduct(productID string, _, _ *time.Time, _, _ int) ([]*entity.StockLedgerEntry, error) {
	return r.s.entriesFor(productID), nil
}

func (r *fakeLedgerRepo) ListByReference(reference string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if e.Reference == reference {
			out = append(out, e)
		}
	}
	return out, nil
}

// ── Fake SaleRepository ───────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.saleItems[item.SaleID] = append(r.s.saleItems[item.SaleID], item)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) { return r.GetByID(id) }

func (r *fakeSaleRepo) GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.InvoiceNumber == invoiceNumber {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return r.s.saleItems[saleID], nil
}

func (r *fakeSaleRepo) UpdateStatus(id, status string) error {
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	return nil
}

func (r *fakeSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) List(status string, _, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if status == "" || sale.Status == status {
			cp := *sale
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.s.sales, id)
	delete(r.s.saleItems, id)
	return nil
}

// ── Fake CustomerRepository ───────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) Update(*entity.Customer) error { return nil }
func (r *fakeCustomerRepo) List(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.s.customers, id)
	return nil
}

// ── Fake SaleTxRunner con semántica de rollback ───────────────────────────────

type fakeSaleTxRunner struct{ s *memStore }

func (r *fakeSaleTxRunner) RunSale(_ context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeLedgerRepo{r.s}, &fakeProductRepo{r.s}, &fakeSaleRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID     = "user-1"
	testCustomerID = "cust-1"
)

func seedStore() *memStore {
	s := newMemStore()
	s.customers[testCustomerID] = &entity.Customer{ID: testCustomerID, Name: "Cliente Uno"}
	s.products["p1"] = &entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Producto Uno",
		Price: decimal.NewFromInt(100), Quantity: 10,
	}
	s.products["p2"] = &entity.Product{
		ID: "p2", SKU: "SKU-2", Name: "Producto Dos",
		Price: decimal.NewFromInt(50), Quantity: 3,
	}
	return s
}

func newSalesUseCase(s *memStore) *sales.UseCase {
	stock := inventory.NewStockService(nil) // ApplyDeltaInTx no usa el runner propio
	return sales.NewUseCase(
		&fakeSaleTxRunner{s},
		stock,
		&fakeSaleRepo{s},
		&fakeCustomerRepo{s},
		&fakeProductRepo{s},
	)
}

func saleRequest(items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{CustomerID: testCustomerID, Items: items}
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear venta
// ──────────────────────────────────────────────────────────────────────────────

// Crear una venta descuenta stock por línea y deja exactamente una entrada
// SALE en el ledger por cada línea, referenciando la factura.
func TestCrearVenta_DescuentaStockYRegistraLedger(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	out, err := uc.Create(context.Background(), testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 4},
		dto.SaleItemRequest{ProductID: "p2", Quantity: 2},
	))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.SaleStatusPending, out.Status)
	assert.True(t, strings.HasPrefix(out.InvoiceNumber, "INV-"))

	assert.Equal(t, int64(6), s.products["p1"].Quantity, "p1: 10 - 4")
	assert.Equal(t, int64(1), s.products["p2"].Quantity, "p2: 3 - 2")

	p1Entries := s.entriesFor("p1")
	require.Len(t, p1Entries, 1, "una entrada de ledger por línea")
	assert.Equal(t, entity.LedgerTypeSale, p1Entries[0].Type)
	assert.Equal(t, int64(-4), p1Entries[0].Delta)
	assert.Equal(t, out.InvoiceNumber, p1Entries[0].Reference)

	p2Entries := s.entriesFor("p2")
	require.Len(t, p2Entries, 1)
	assert.Equal(t, int64(-2), p2Entries[0].Delta)
}

// Los totales siempre se recalculan desde las líneas, con descuento e impuesto.
func TestCrearVenta_TotalesDesdeLineas(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	in := saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 2}, // 2 * 100 = 200
		dto.SaleItemRequest{ProductID: "p2", Quantity: 2}, // 2 * 50  = 100
	)
	in.DiscountPct = decimal.NewFromInt(10)
	in.TaxPct = decimal.NewFromInt(19)

	out, err := uc.Create(context.Background(), testUserID, in)
	require.NoError(t, err)

	// subtotal 300, con 10% desc = 270, con 19% IVA = 321.30
	assert.True(t, decimal.NewFromInt(300).Equal(out.Subtotal), "subtotal: %s", out.Subtotal)
	assert.True(t, decimal.NewFromFloat(321.30).Equal(out.Total), "total: %s", out.Total)
}

// Si el precio unitario no viene en el request se toma el precio de lista.
func TestCrearVenta_PrecioDeListaPorDefecto(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	out, err := uc.Create(context.Background(), testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 1},
	))
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(out.Items[0].UnitPrice))
}

// Dos ventas creadas en el mismo segundo reciben números de factura distintos.
func TestCrearVenta_NumerosDeFacturaDistintos(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	first, err := uc.Create(context.Background(), testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 1},
	))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 1},
	))
	require.NoError(t, err)

	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
}

// Stock insuficiente en cualquier línea aborta la venta completa: ningún
// producto cambia y el ledger queda vacío (todo-o-nada).
func TestCrearVenta_StockInsuficiente_TodoONada(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	_, err := uc.Create(context.Background(), testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: "p1", Quantity: 4},
		dto.SaleItemRequest{ProductID: "p2", Quantity: 99}, // p2 solo tiene 3
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), s.products["p1"].Quantity, "la primera línea debe revertirse")
	assert.Equal(t, int64(3), s.products["p2"].Quantity)
	assert.Empty(t, s.ledger, "ninguna entrada de ledger debe persistir")
	assert.Empty(t, s.sales, "la venta no debe persistir")
}

func TestCrearVenta_ClienteInexistente(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	in := saleRequest(dto.SaleItemRequest{ProductID: "p1", Quantity: 1})
	in.CustomerID = "no-existe"
	_, err := uc.Create(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearVenta_DescuentoFueraDeRango(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)

	in := saleRequest(dto.SaleItemRequest{ProductID: "p1", Quantity: 1})
	in.DiscountPct = decimal.NewFromInt(101)
	_, err := uc.Create(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func createSale(t *testing.T, uc *sales.UseCase, items ...dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), testUserID, saleRequest(items...))
	require.NoError(t, err)
	return out
}

// Cancelar una venta PENDING restituye el stock con entradas ADJUSTMENT
// que referencian la factura cancelada.
func TestCancelarVenta_RestituyeStock(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	sale := createSale(t, uc, dto.SaleItemRequest{ProductID: "p1", Quantity: 4})
	require.Equal(t, int64(6), s.products["p1"].Quantity)

	out, err := uc.Cancel(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)
	assert.Equal(t, int64(10), s.products["p1"].Quantity, "el stock vuelve al valor original")

	entries := s.entriesFor("p1")
	require.Len(t, entries, 2, "la venta y su compensación")
	assert.Equal(t, entity.LedgerTypeAdjustment, entries[1].Type)
	assert.Equal(t, int64(4), entries[1].Delta)
	assert.Equal(t, "CANCEL "+sale.InvoiceNumber, entries[1].Reference)
}

// Una venta COMPLETED es terminal: cancelarla o borrarla falla con
// ErrInvalidState y no toca stock ni ledger.
func TestVentaCompletada_EsInmutable(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	sale := createSale(t, uc, dto.SaleItemRequest{ProductID: "p1", Quantity: 4})

	_, err := uc.Complete(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), testUserID, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = uc.Delete(context.Background(), testUserID, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, int64(6), s.products["p1"].Quantity, "el stock no debe cambiar")
	assert.Len(t, s.entriesFor("p1"), 1, "solo la entrada original de la venta")
	assert.Equal(t, entity.SaleStatusCompleted, s.sales[sale.ID].Status)
}

// Completar dos veces también es ErrInvalidState.
func TestCompletarVentaDosVeces(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	sale := createSale(t, uc, dto.SaleItemRequest{ProductID: "p1", Quantity: 1})

	_, err := uc.Complete(context.Background(), sale.ID)
	require.NoError(t, err)
	_, err = uc.Complete(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Borrar una venta PENDING restituye el stock igual que una cancelación.
func TestBorrarVentaPendiente_RestituyeStock(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	sale := createSale(t, uc, dto.SaleItemRequest{ProductID: "p1", Quantity: 4})

	err := uc.Delete(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.products["p1"].Quantity)
	assert.NotContains(t, s.sales, sale.ID)

	entries := s.entriesFor("p1")
	require.Len(t, entries, 2)
	assert.Equal(t, "DELETE "+sale.InvoiceNumber, entries[1].Reference)
}

// Borrar una venta CANCELLED no vuelve a tocar stock: ya fue compensada.
func TestBorrarVentaCancelada_SinDobleCompensacion(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	sale := createSale(t, uc, dto.SaleItemRequest{ProductID: "p1", Quantity: 4})

	_, err := uc.Cancel(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), s.products["p1"].Quantity)

	err = uc.Delete(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), s.products["p1"].Quantity, "sin doble restitución")
	assert.Len(t, s.entriesFor("p1"), 2, "venta + cancelación, nada más")
}

func TestCancelarVentaInexistente(t *testing.T) {
	s := seedStore()
	uc := newSalesUseCase(s)
	_, err := uc.Cancel(context.Background(), testUserID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
