package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// Lecturas con LEFT JOIN: producto y usuario pueden haber sido eliminados
// (product_id/user_id quedan en NULL vía ON DELETE SET NULL) y el historial
// debe seguir siendo legible.
const transactionSelect = `
	SELECT t.id, t.product_id, t.user_id, t.action, t.quantity, t.notes, t.timestamp,
	       p.id, p.name, p.sku,
	       u.id, u.username, u.role
	FROM transactions t
	LEFT JOIN products p ON p.id = t.product_id
	LEFT JOIN users u ON u.id = t.user_id`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para transacciones. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una nueva transacción. Append-only: no existe Update ni Delete.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, product_id, user_id, action, quantity, notes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProductID, tx.UserID, tx.Action, tx.Quantity, tx.Notes, tx.Timestamp,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID con producto y usuario anidados.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	row := r.q.QueryRow(context.Background(), transactionSelect+` WHERE t.id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// List lista transacciones, más recientes primero.
func (r *TransactionRepo) List(limit, offset int) ([]*entity.Transaction, error) {
	query := transactionSelect + ` ORDER BY t.timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return scanTransactions(rows)
}

// ListByProduct lista el historial de un producto, más reciente primero.
func (r *TransactionRepo) ListByProduct(productID string) ([]*entity.Transaction, error) {
	query := transactionSelect + ` WHERE t.product_id = $1 ORDER BY t.timestamp DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by product: %w", err)
	}
	return scanTransactions(rows)
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var productID, userID *string
	var pID, pName, pSKU *string
	var uID, uUsername, uRole *string
	err := row.Scan(
		&tx.ID, &productID, &userID, &tx.Action, &tx.Quantity, &tx.Notes, &tx.Timestamp,
		&pID, &pName, &pSKU,
		&uID, &uUsername, &uRole,
	)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		tx.ProductID = *productID
	}
	if userID != nil {
		tx.UserID = *userID
	}
	if pID != nil {
		tx.Product = &entity.Product{ID: *pID, Name: *pName, SKU: *pSKU}
	}
	if uID != nil {
		tx.User = &entity.User{ID: *uID, Username: *uUsername, Role: *uRole}
	}
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}
