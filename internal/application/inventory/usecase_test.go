package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeTxRunner imita la semántica transaccional del TxRunner real: toma un
// snapshot del estado antes de ejecutar fn y lo restaura si fn falla. Así los
// tests pueden verificar que un error deja el stock y la auditoría intactos
// (rollback), que es la garantía central del motor.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products     map[string]*entity.Product
	transactions []*entity.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*entity.Product)}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	cp.transactions = append([]*entity.Transaction(nil), s.transactions...)
	return cp
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.transactions = snap.transactions
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	c := *p
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	stored, ok := r.store.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	quantity := stored.Quantity
	c := *p
	c.Quantity = quantity // Update no toca quantity, igual que el repo real
	r.store.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int) error {
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.IsLowStock() {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(categoryID string) (int, error) { return 0, nil }
func (r *fakeProductRepo) CountBySupplier(supplierID string) (int, error) { return 0, nil }

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeTransactionRepo struct{ store *fakeStore }

func (r *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	c := *tx
	r.store.transactions = append(r.store.transactions, &c)
	return nil
}

func (r *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	for _, tx := range r.store.transactions {
		if tx.ID == id {
			c := *tx
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) List(limit, offset int) ([]*entity.Transaction, error) {
	return append([]*entity.Transaction(nil), r.store.transactions...), nil
}

func (r *fakeTransactionRepo) ListByProduct(productID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.store.transactions {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	store *fakeStore
	// txRepo permite inyectar un repo de transacciones que falle a mitad
	// de la operación; nil usa el fake normal.
	txRepo repository.TransactionRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	txRepo := f.txRepo
	if txRepo == nil {
		txRepo = &fakeTransactionRepo{store: f.store}
	}
	snap := f.store.snapshot()
	err := fn(&fakeProductRepo{store: f.store}, txRepo)
	if err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

// brokenTransactionRepo falla al insertar la fila de auditoría, después de
// que UpdateQuantity ya mutó el producto dentro de la transacción.
type brokenTransactionRepo struct {
	fakeTransactionRepo
	err error
}

func (r *brokenTransactionRepo) Create(tx *entity.Transaction) error { return r.err }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "00000000-0000-0000-0000-0000000000aa"
	testUserID    = "00000000-0000-0000-0000-0000000000bb"
)

func setup(quantity, threshold int) (*fakeStore, *inventory.RecordTransactionUseCase) {
	store := newFakeStore()
	store.products[testProductID] = &entity.Product{
		ID:                testProductID,
		Name:              "Cable USB-C",
		SKU:               "X1",
		Quantity:          quantity,
		LowStockThreshold: threshold,
	}
	uc := inventory.NewRecordTransactionUseCase(&fakeTxRunner{store: store})
	return store, uc
}

func record(t *testing.T, uc *inventory.RecordTransactionUseCase, action string, quantity int) *inventory.RecordResult {
	t.Helper()
	res, err := uc.RecordTransaction(context.Background(), inventory.TransactionInputDTO{
		ProductID: testProductID,
		UserID:    testUserID,
		Action:    action,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Acciones add / remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransaction_AddIncrementaYRegistraMagnitud(t *testing.T) {
	store, uc := setup(10, 15)

	res := record(t, uc, entity.ActionAdd, 20)

	assert.Equal(t, 30, res.Product.Quantity)
	assert.Equal(t, 30, store.products[testProductID].Quantity, "la cantidad debe persistirse")
	require.NotNil(t, res.Transaction)
	assert.Equal(t, entity.ActionAdd, res.Transaction.Action)
	assert.Equal(t, 20, res.Transaction.Quantity, "add guarda la magnitud del cambio")
	assert.Len(t, store.transactions, 1)
}

func TestRecordTransaction_RemoveDecrementaYRegistraMagnitud(t *testing.T) {
	store, uc := setup(10, 15)

	res := record(t, uc, entity.ActionRemove, 5)

	assert.Equal(t, 5, res.Product.Quantity)
	assert.Equal(t, 5, store.products[testProductID].Quantity)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, entity.ActionRemove, res.Transaction.Action)
	assert.Equal(t, 5, res.Transaction.Quantity, "remove guarda la magnitud, no el delta con signo")
}

func TestRecordTransaction_RemoveStockInsuficiente_SinEfectos(t *testing.T) {
	store, uc := setup(3, 15)

	_, err := uc.RecordTransaction(context.Background(), inventory.TransactionInputDTO{
		ProductID: testProductID,
		UserID:    testUserID,
		Action:    entity.ActionRemove,
		Quantity:  5,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, store.products[testProductID].Quantity,
		"un remove rechazado no debe alterar la cantidad")
	assert.Empty(t, store.transactions,
		"un remove rechazado no debe dejar fila de auditoría")
}

func TestRecordTransaction_RemoveExacto_LlegaACero(t *testing.T) {
	store, uc := setup(5, 15)

	res := record(t, uc, entity.ActionRemove, 5)

	assert.Equal(t, 0, res.Product.Quantity, "remover exactamente el stock disponible es válido")
	assert.Equal(t, 0, store.products[testProductID].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acción update: quantity es la nueva cantidad absoluta; la transacción
// registra el delta con signo.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransaction_UpdateAlAlza_DeltaPositivo(t *testing.T) {
	store, uc := setup(10, 15)

	res := record(t, uc, entity.ActionUpdate, 25)

	assert.Equal(t, 25, res.Product.Quantity)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, entity.ActionUpdate, res.Transaction.Action)
	assert.Equal(t, 15, res.Transaction.Quantity, "update guarda el delta con signo: 25-10 = +15")
	assert.Equal(t, 25, store.products[testProductID].Quantity)
}

func TestRecordTransaction_UpdateALaBaja_DeltaNegativo(t *testing.T) {
	store, uc := setup(10, 15)

	res := record(t, uc, entity.ActionUpdate, 4)

	assert.Equal(t, 4, res.Product.Quantity)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, -6, res.Transaction.Quantity, "update guarda el delta con signo: 4-10 = -6")
	assert.Equal(t, 4, store.products[testProductID].Quantity)
}

func TestRecordTransaction_UpdateSinCambio_NoRegistraTransaccion(t *testing.T) {
	store, uc := setup(10, 15)

	res := record(t, uc, entity.ActionUpdate, 10)

	assert.Nil(t, res.Transaction, "delta cero no debe producir fila de auditoría")
	assert.Empty(t, store.transactions)
	assert.Equal(t, 10, store.products[testProductID].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: la mutación de stock y la fila de auditoría comparten destino.
// ──────────────────────────────────────────────────────────────────────────────

// La cantidad ya fue mutada cuando el insert de auditoría falla; la
// transacción completa debe revertirse: ni cambio de stock ni fila.
func TestRecordTransaction_FalloAlInsertarAuditoria_RevierteLaCantidad(t *testing.T) {
	store := newFakeStore()
	store.products[testProductID] = &entity.Product{
		ID:                testProductID,
		Name:              "Cable USB-C",
		SKU:               "X1",
		Quantity:          10,
		LowStockThreshold: 15,
	}
	errAuditoria := errors.New("insert de auditoría falló")
	runner := &fakeTxRunner{
		store:  store,
		txRepo: &brokenTransactionRepo{err: errAuditoria},
	}
	uc := inventory.NewRecordTransactionUseCase(runner)

	_, err := uc.RecordTransaction(context.Background(), inventory.TransactionInputDTO{
		ProductID: testProductID,
		UserID:    testUserID,
		Action:    entity.ActionAdd,
		Quantity:  7,
	})

	require.ErrorIs(t, err, errAuditoria)
	assert.Equal(t, 10, store.products[testProductID].Quantity,
		"el add ya había escrito 17; el rollback debe dejar la cantidad original")
	assert.Empty(t, store.transactions,
		"sin commit no debe quedar fila de auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransaction_EntradaInvalida(t *testing.T) {
	_, uc := setup(10, 15)

	cases := []struct {
		name  string
		input inventory.TransactionInputDTO
	}{
		{"sin product_id", inventory.TransactionInputDTO{UserID: testUserID, Action: "add", Quantity: 1}},
		{"sin user_id", inventory.TransactionInputDTO{ProductID: testProductID, Action: "add", Quantity: 1}},
		{"acción desconocida", inventory.TransactionInputDTO{ProductID: testProductID, UserID: testUserID, Action: "transfer", Quantity: 1}},
		{"cantidad cero", inventory.TransactionInputDTO{ProductID: testProductID, UserID: testUserID, Action: "add", Quantity: 0}},
		{"cantidad negativa", inventory.TransactionInputDTO{ProductID: testProductID, UserID: testUserID, Action: "remove", Quantity: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordTransaction(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordTransaction_ProductoInexistente(t *testing.T) {
	_, uc := setup(10, 15)

	_, err := uc.RecordTransaction(context.Background(), inventory.TransactionInputDTO{
		ProductID: "no-existe",
		UserID:    testUserID,
		Action:    entity.ActionAdd,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: producto bajo umbral, movimientos encadenados y
// reconstrucción de la cantidad desde el historial.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransaction_EscenarioStockBajoYReconstruccion(t *testing.T) {
	store, uc := setup(10, 15)

	assert.True(t, store.products[testProductID].IsLowStock(),
		"10 < 15: el producto arranca bajo el umbral")

	record(t, uc, entity.ActionRemove, 5) // 10 -> 5
	record(t, uc, entity.ActionAdd, 20)   // 5 -> 25
	record(t, uc, entity.ActionUpdate, 18) // 25 -> 18, delta -7

	final := store.products[testProductID]
	assert.Equal(t, 18, final.Quantity)
	assert.False(t, final.IsLowStock(), "18 >= 15: ya no está bajo el umbral")

	// El historial permite reconstruir la cantidad final desde la inicial:
	// add suma magnitud, remove resta magnitud, update suma su delta con signo.
	reconstructed := 10
	for _, tx := range store.transactions {
		switch tx.Action {
		case entity.ActionAdd:
			reconstructed += tx.Quantity
		case entity.ActionRemove:
			reconstructed -= tx.Quantity
		case entity.ActionUpdate:
			reconstructed += tx.Quantity
		}
	}
	assert.Equal(t, final.Quantity, reconstructed,
		"la suma de los movimientos debe reproducir la cantidad final")
	assert.Len(t, store.transactions, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Primitivas in-tx usadas por el CRUD de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordInitialStockInTx_CantidadCeroNoEscribe(t *testing.T) {
	store, uc := setup(0, 15)
	txRepo := &fakeTransactionRepo{store: store}

	tx, err := uc.RecordInitialStockInTx(txRepo, store.products[testProductID], testUserID, store.products[testProductID].CreatedAt)

	require.NoError(t, err)
	assert.Nil(t, tx, "un producto creado con cantidad cero no genera transacción inicial")
	assert.Empty(t, store.transactions)
}

func TestRecordInitialStockInTx_RegistraAddConCantidadInicial(t *testing.T) {
	store, uc := setup(50, 15)
	txRepo := &fakeTransactionRepo{store: store}

	tx, err := uc.RecordInitialStockInTx(txRepo, store.products[testProductID], testUserID, store.products[testProductID].CreatedAt)

	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, entity.ActionAdd, tx.Action)
	assert.Equal(t, 50, tx.Quantity)
	assert.Len(t, store.transactions, 1)
}
