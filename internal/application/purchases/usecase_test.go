package purchases_test

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
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/purchases"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismo patrón que en ventas: snapshot/restore en el runner)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products      map[string]*entity.Product
	ledger        []*entity.StockLedgerEntry
	purchases     map[string]*entity.Purchase
	purchaseItems map[string][]*entity.PurchaseItem
	suppliers     map[string]*entity.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		products:      make(map[string]*entity.Product),
		purchases:     make(map[string]*entity.Purchase),
		purchaseItems: make(map[string][]*entity.PurchaseItem),
		suppliers:     make(map[string]*entity.Supplier),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.ledger = append(c.ledger, s.ledger...)
	for id, p := range s.purchases {
		cp := *p
		c.purchases[id] = &cp
	}
	for id, items := range s.purchaseItems {
		c.purchaseItems[id] = append([]*entity.PurchaseItem(nil), items...)
	}
	for id, sup := range s.suppliers {
		cp := *sup
		c.suppliers[id] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.ledger = snap.ledger
	s.purchases = snap.purchases
	s.purchaseItems = snap.purchaseItems
	s.suppliers = snap.suppliers
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
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
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
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
func (r *fakeProductRepo) Delete(id string) error                            { delete(r.s.products, id); return nil }

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Create(e *entity.StockLedgerEntry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}
func (r *fakeLedgerRepo) GetByID(string) (*entity.StockLedgerEntry, error) { return nil, nil }
func (r *fakeLedgerRepo) ListByProduct(productID string, _, _ *time.Time, _, _ int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
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

type fakePurchaseRepo struct{ s *memStore }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.s.purchases[p.ID] = &cp
	return nil
}
func (r *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	r.s.purchaseItems[item.PurchaseID] = append(r.s.purchaseItems[item.PurchaseID], item)
	return nil
}
func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakePurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	return r.GetByID(id)
}
func (r *fakePurchaseRepo) GetByOrderNumber(orderNumber string) (*entity.Purchase, error) {
	for _, p := range r.s.purchases {
		if p.OrderNumber == orderNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakePurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	return r.s.purchaseItems[purchaseID], nil
}
func (r *fakePurchaseRepo) UpdateStatus(id, status string) error {
	p, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}
func (r *fakePurchaseRepo) List(status string, _, _ int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if status == "" || p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakePurchaseRepo) Delete(id string) error {
	delete(r.s.purchases, id)
	delete(r.s.purchaseItems, id)
	return nil
}

type fakeSupplierRepo struct{ s *memStore }

func (r *fakeSupplierRepo) Create(sup *entity.Supplier) error { r.s.suppliers[sup.ID] = sup; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return sup, nil
}
func (r *fakeSupplierRepo) Update(*entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) List(string, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Delete(id string) error { delete(r.s.suppliers, id); return nil }

type fakePurchaseTxRunner struct{ s *memStore }

func (r *fakePurchaseTxRunner) RunPurchase(_ context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeLedgerRepo{r.s}, &fakeProductRepo{r.s}, &fakePurchaseRepo{r.s}); err != nil {
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
	testSupplierID = "sup-1"
)

func seedStore() *memStore {
	s := newMemStore()
	s.suppliers[testSupplierID] = &entity.Supplier{ID: testSupplierID, Name: "Proveedor Uno"}
	s.products["p1"] = &entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Producto Uno",
		CostPrice: decimal.NewFromInt(10), Quantity: 10,
	}
	return s
}

func newPurchasesUseCase(s *memStore) *purchases.UseCase {
	stock := inventory.NewStockService(nil)
	return purchases.NewUseCase(
		&fakePurchaseTxRunner{s},
		stock,
		&fakePurchaseRepo{s},
		&fakeSupplierRepo{s},
		&fakeProductRepo{s},
	)
}

func createPurchase(t *testing.T, uc *purchases.UseCase, items ...dto.PurchaseItemRequest) *dto.PurchaseResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), testUserID, dto.CreatePurchaseRequest{
		SupplierID: testSupplierID,
		Items:      items,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear una orden no toca el stock: la mercancía entra al recibirla.
func TestCrearOrden_SinEfectoEnStock(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)

	out := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(20),
	})

	assert.Equal(t, entity.PurchaseStatusPending, out.Status)
	assert.True(t, strings.HasPrefix(out.OrderNumber, "PO-"))
	assert.True(t, decimal.NewFromInt(100).Equal(out.Total), "total 5 * 20")
	assert.Equal(t, int64(10), s.products["p1"].Quantity, "el stock no cambia al crear")
	assert.Empty(t, s.ledger)
}

// Dos órdenes creadas en el mismo segundo reciben números distintos.
func TestCrearOrden_NumerosDeOrdenDistintos(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)

	first := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(20),
	})
	second := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(20),
	})

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

// Recibir la orden entra el stock, deja una entrada PURCHASE por línea y
// recalcula el costo promedio ponderado.
func TestRecibirOrden_EntraStockYRecalculaCosto(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)
	po := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 10, UnitCost: decimal.NewFromInt(20),
	})

	out, err := uc.Receive(context.Background(), testUserID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, out.Status)

	p := s.products["p1"]
	assert.Equal(t, int64(20), p.Quantity, "10 existentes + 10 recibidos")
	// promedio ponderado: (10*10 + 10*20) / 20 = 15
	assert.True(t, decimal.NewFromInt(15).Equal(p.CostPrice), "costo promedio: %s", p.CostPrice)

	require.Len(t, s.ledger, 1)
	assert.Equal(t, entity.LedgerTypePurchase, s.ledger[0].Type)
	assert.Equal(t, int64(10), s.ledger[0].Delta)
	assert.Equal(t, po.OrderNumber, s.ledger[0].Reference)
}

// Recibir dos veces es ErrInvalidState y no duplica stock.
func TestRecibirOrdenDosVeces(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)
	po := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(20),
	})

	_, err := uc.Receive(context.Background(), testUserID, po.ID)
	require.NoError(t, err)
	_, err = uc.Receive(context.Background(), testUserID, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, int64(15), s.products["p1"].Quantity, "el stock entra una sola vez")
	assert.Len(t, s.ledger, 1)
}

// Una orden RECEIVED es terminal: ni cancelar ni borrar.
func TestOrdenRecibida_EsInmutable(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)
	po := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(20),
	})
	_, err := uc.Receive(context.Background(), testUserID, po.ID)
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = uc.Delete(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Cancelar una orden PENDING no necesita compensación de stock.
func TestCancelarOrdenPendiente(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)
	po := createPurchase(t, uc, dto.PurchaseItemRequest{
		ProductID: "p1", Quantity: 5, UnitCost: decimal.NewFromInt(20),
	})

	out, err := uc.Cancel(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, out.Status)
	assert.Equal(t, int64(10), s.products["p1"].Quantity)
	assert.Empty(t, s.ledger)
}

func TestCrearOrden_ProveedorInexistente(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)

	_, err := uc.Create(context.Background(), testUserID, dto.CreatePurchaseRequest{
		SupplierID: "no-existe",
		Items:      []dto.PurchaseItemRequest{{ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearOrden_CantidadInvalida(t *testing.T) {
	s := seedStore()
	uc := newPurchasesUseCase(s)

	_, err := uc.Create(context.Background(), testUserID, dto.CreatePurchaseRequest{
		SupplierID: testSupplierID,
		Items:      []dto.PurchaseItemRequest{{ProductID: "p1", Quantity: 0, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
