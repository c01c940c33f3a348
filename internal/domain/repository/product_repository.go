package repository

import "github.com/jhoicas/stocktrack-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción del TxRunner.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)
	CountBySupplier(supplierID string) (int, error)
	Delete(id string) error
}
