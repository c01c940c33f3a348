package repository

import "github.com/jhoicas/stocktrack-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para Transaction (DIP).
// Las transacciones son append-only: no hay Update ni Delete.
// Las lecturas devuelven Product y User anidados (nil si fueron eliminados).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	List(limit, offset int) ([]*entity.Transaction, error)
	ListByProduct(productID string) ([]*entity.Transaction, error)
}
