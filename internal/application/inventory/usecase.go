package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// RecordTransactionUseCase es el único camino por el que cambia el stock de
// un producto. Cada cambio de cantidad se registra como una Transaction
// inmutable dentro de la misma transacción de BD, con bloqueo de fila
// (SELECT FOR UPDATE) para serializar mutaciones concurrentes.
type RecordTransactionUseCase struct {
	txRunner TxRunner
}

// NewRecordTransactionUseCase construye el motor de transacciones.
func NewRecordTransactionUseCase(txRunner TxRunner) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{txRunner: txRunner}
}

// TransactionInputDTO entrada para registrar una transacción de inventario.
// Para add/remove, Quantity es la magnitud del cambio (positiva).
// Para update, Quantity es la nueva cantidad absoluta del producto.
type TransactionInputDTO struct {
	ProductID string
	UserID    string
	Action    string
	Quantity  int
	Notes     string
}

// RecordResult producto actualizado y transacción creada. Transaction queda
// en nil cuando una acción update no produce cambio (delta cero).
type RecordResult struct {
	Product     *entity.Product
	Transaction *entity.Transaction
}

// RecordTransaction valida la entrada, bloquea la fila del producto y aplica
// la acción. Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace);
// en caso de error el producto conserva su cantidad previa y no queda
// ninguna fila de auditoría parcial.
func (uc *RecordTransactionUseCase) RecordTransaction(ctx context.Context, input TransactionInputDTO) (*RecordResult, error) {
	if input.ProductID == "" || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAction(input.Action) {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result RecordResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		// La existencia se verifica dentro de la tx, sobre la fila bloqueada,
		// para que dos remove concurrentes no pasen el chequeo de stock a la vez.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		switch input.Action {
		case entity.ActionAdd:
			product.Quantity += input.Quantity
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
				return err
			}
			tx := newTransaction(product.ID, input.UserID, entity.ActionAdd, input.Quantity, input.Notes, now)
			if err := txRepo.Create(tx); err != nil {
				return err
			}
			result = RecordResult{Product: product, Transaction: tx}
			return nil

		case entity.ActionRemove:
			if product.Quantity < input.Quantity {
				return domain.ErrInsufficientStock
			}
			product.Quantity -= input.Quantity
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
				return err
			}
			// add/remove guardan la magnitud, no el delta con signo.
			tx := newTransaction(product.ID, input.UserID, entity.ActionRemove, input.Quantity, input.Notes, now)
			if err := txRepo.Create(tx); err != nil {
				return err
			}
			result = RecordResult{Product: product, Transaction: tx}
			return nil

		case entity.ActionUpdate:
			tx, err := uc.applyQuantityUpdate(productRepo, txRepo, product, input.Quantity, input.UserID, input.Notes, now)
			if err != nil {
				return err
			}
			result = RecordResult{Product: product, Transaction: tx}
			return nil
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ApplyQuantityUpdateInTx aplica un ajuste directo de cantidad usando los
// repositorios proporcionados (misma transacción del caller). Lo usa el CRUD
// de productos cuando el campo quantity se edita directamente: el cambio
// pasa por aquí para que la auditoría no se rompa.
// product debe venir de GetForUpdate dentro de la tx del caller.
// Devuelve nil sin error cuando newQuantity no difiere de la actual.
func (uc *RecordTransactionUseCase) ApplyQuantityUpdateInTx(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	product *entity.Product,
	newQuantity int,
	userID, notes string,
	now time.Time,
) (*entity.Transaction, error) {
	return uc.applyQuantityUpdate(productRepo, txRepo, product, newQuantity, userID, notes, now)
}

// RecordInitialStockInTx registra la transacción add inicial de un producto
// recién creado (misma transacción del caller). Con cantidad cero no se
// escribe nada: un add de magnitud cero violaría la regla de cantidad positiva.
func (uc *RecordTransactionUseCase) RecordInitialStockInTx(
	txRepo repository.TransactionRepository,
	product *entity.Product,
	userID string,
	now time.Time,
) (*entity.Transaction, error) {
	if product.Quantity == 0 {
		return nil, nil
	}
	tx := newTransaction(product.ID, userID, entity.ActionAdd, product.Quantity, "creación inicial del producto", now)
	if err := txRepo.Create(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (uc *RecordTransactionUseCase) applyQuantityUpdate(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	product *entity.Product,
	newQuantity int,
	userID, notes string,
	now time.Time,
) (*entity.Transaction, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	delta := newQuantity - product.Quantity
	if delta == 0 {
		// Sin cambio real: no se escribe transacción.
		return nil, nil
	}
	product.Quantity = newQuantity
	if err := productRepo.UpdateQuantity(product.ID, newQuantity); err != nil {
		return nil, err
	}
	if notes == "" {
		notes = "cantidad del producto actualizada"
	}
	// update guarda el delta con signo (puede ser negativo), a diferencia
	// de add/remove que guardan la magnitud.
	tx := newTransaction(product.ID, userID, entity.ActionUpdate, delta, notes, now)
	if err := txRepo.Create(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func newTransaction(productID, userID, action string, quantity int, notes string, now time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Action:    action,
		Quantity:  quantity,
		Notes:     notes,
		Timestamp: now,
	}
}
