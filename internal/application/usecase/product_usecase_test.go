package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

const (
	catID  = "00000000-0000-0000-0000-0000000000c1"
	supID  = "00000000-0000-0000-0000-0000000000s1"
	userID = "00000000-0000-0000-0000-0000000000u1"
)

func newProductUC(store *memStore) *usecase.ProductUseCase {
	store.categories[catID] = &entity.Category{ID: catID, Name: "Electronics", CreatedAt: time.Now()}
	store.suppliers[supID] = &entity.Supplier{ID: supID, Name: "Tech Supplies Inc", CreatedAt: time.Now()}
	engine := inventory.NewRecordTransactionUseCase(&memTxRunner{store: store})
	return usecase.NewProductUseCase(
		&memTxRunner{store: store},
		&memProductRepo{store: store},
		&memCategoryRepo{store: store},
		&memSupplierRepo{store: store},
		engine,
	)
}

func createRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       "Laptop",
		SKU:        "ELEC-001",
		Quantity:   50,
		Price:      decimal.RequireFromString("999.99"),
		CategoryID: catID,
		SupplierID: supID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_RegistraTransaccionInicial(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	out, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 50, out.Quantity)
	assert.Equal(t, 10, out.LowStockThreshold, "sin umbral explícito aplica el valor por defecto")
	require.NotNil(t, out.Category)
	assert.Equal(t, "Electronics", out.Category.Name)
	require.NotNil(t, out.Supplier)
	assert.Equal(t, "Tech Supplies Inc", out.Supplier.Name)

	require.Len(t, store.transactions, 1, "la creación con stock debe dejar la transacción add inicial")
	tx := store.transactions[0]
	assert.Equal(t, entity.ActionAdd, tx.Action)
	assert.Equal(t, 50, tx.Quantity)
	assert.Equal(t, out.ID, tx.ProductID)
	assert.Equal(t, userID, tx.UserID)
}

func TestProductCreate_CantidadCero_SinTransaccion(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	in := createRequest()
	in.Quantity = 0
	out, err := uc.Create(context.Background(), userID, in)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Quantity)
	assert.Empty(t, store.transactions, "cantidad inicial cero no genera transacción")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	_, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)

	in := createRequest()
	in.Name = "Otro producto"
	_, err = uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_ReferenciasInvalidas(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	in := createRequest()
	in.CategoryID = "no-existe"
	_, err := uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "categoría inexistente debe rechazarse")

	in = createRequest()
	in.SupplierID = "no-existe"
	_, err = uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente debe rechazarse")
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	in := createRequest()
	in.Quantity = -1
	_, err := uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = createRequest()
	in.Price = decimal.RequireFromString("-5")
	_, err = uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := -3
	in = createRequest()
	in.LowStockThreshold = &negative
	_, err = uc.Create(context.Background(), userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: la edición directa de quantity pasa por el motor de transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_CambioDeCantidad_GeneraTransaccionUpdate(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)
	require.Len(t, store.transactions, 1) // add inicial

	newQuantity := 30
	out, err := uc.Update(context.Background(), created.ID, userID, dto.UpdateProductRequest{
		Quantity: &newQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, out.Quantity)

	require.Len(t, store.transactions, 2, "el cambio de cantidad debe dejar exactamente una transacción update")
	tx := store.transactions[1]
	assert.Equal(t, entity.ActionUpdate, tx.Action)
	assert.Equal(t, -20, tx.Quantity, "delta con signo: 30-50 = -20")
	assert.Equal(t, userID, tx.UserID)
}

func TestProductUpdate_MismaCantidad_NoGeneraTransaccion(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)

	sameQuantity := 50
	out, err := uc.Update(context.Background(), created.ID, userID, dto.UpdateProductRequest{
		Quantity: &sameQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, out.Quantity)
	assert.Len(t, store.transactions, 1, "solo la add inicial: sin cambio real no hay auditoría")
}

func TestProductUpdate_CamposParciales(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)

	newName := "Laptop Pro"
	newPrice := decimal.RequireFromString("1299.99")
	out, err := uc.Update(context.Background(), created.ID, userID, dto.UpdateProductRequest{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Laptop Pro", out.Name)
	assert.True(t, newPrice.Equal(out.Price))
	assert.Equal(t, "ELEC-001", out.SKU, "los campos no enviados se conservan")
	assert.Equal(t, 50, out.Quantity, "sin quantity en el request la cantidad no cambia")
	assert.Len(t, store.transactions, 1)
}

func TestProductUpdate_SKUDeOtroProducto(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	_, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)

	other := createRequest()
	other.SKU = "ELEC-002"
	created, err := uc.Create(context.Background(), userID, other)
	require.NoError(t, err)

	taken := "ELEC-001"
	_, err = uc.Update(context.Background(), created.ID, userID, dto.UpdateProductRequest{SKU: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoEncontrado(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	newName := "X"
	_, err := uc.Update(context.Background(), "no-existe", userID, dto.UpdateProductRequest{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListLowStock / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductListLowStock_FiltraPorUmbral(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	low := 15
	in := createRequest()
	in.Quantity = 8
	in.LowStockThreshold = &low
	_, err := uc.Create(context.Background(), userID, in)
	require.NoError(t, err)

	ok := 10
	in = createRequest()
	in.SKU = "ELEC-002"
	in.Quantity = 40
	in.LowStockThreshold = &ok
	_, err = uc.Create(context.Background(), userID, in)
	require.NoError(t, err)

	out, err := uc.ListLowStock()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ELEC-001", out[0].SKU)
	assert.True(t, out[0].IsLowStock)
}

func TestProductDelete_ConservaHistorial(t *testing.T) {
	store := newMemStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), userID, createRequest())
	require.NoError(t, err)
	require.Len(t, store.transactions, 1)

	require.NoError(t, uc.Delete(created.ID))

	_, exists := store.products[created.ID]
	assert.False(t, exists)
	assert.Len(t, store.transactions, 1, "eliminar el producto no borra su historial")

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
