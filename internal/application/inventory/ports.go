package inventory

import (
	"context"

	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor:
// la mutación de stock y el registro de auditoría comitean juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
