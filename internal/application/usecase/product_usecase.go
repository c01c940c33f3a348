package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// Umbral de stock bajo por defecto cuando el request no lo trae.
const defaultLowStockThreshold = 10

// ProductUseCase casos de uso CRUD para productos. Quantity nunca se escribe
// directamente: la creación registra la transacción add inicial y la edición
// directa del campo pasa por el motor de transacciones (acción update),
// todo dentro de la misma transacción de BD.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	engine       *inventory.RecordTransactionUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	engine *inventory.RecordTransactionUseCase,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		engine:       engine,
	}
}

// Create crea un producto y, si la cantidad inicial es mayor que cero, la
// transacción add inicial, en una sola transacción de BD.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	threshold := defaultLowStockThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	if existing, _ := uc.productRepo.GetBySKU(in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		SKU:               in.SKU,
		Quantity:          in.Quantity,
		Price:             in.Price,
		LowStockThreshold: threshold,
		CategoryID:        in.CategoryID,
		SupplierID:        in.SupplierID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		_, err := uc.engine.RecordInitialStockInTx(txRepo, product, userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category, supplier), nil
}

// GetByID obtiene un producto por ID con categoría y proveedor anidados.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponseWithRefs(product)
}

// Update actualiza un producto (campos parciales). Si quantity viene y
// difiere del valor actual, el cambio pasa por el motor de transacciones
// dentro de la misma tx; con el mismo valor no se escribe transacción alguna.
func (uc *ProductUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	// Validaciones de unicidad y de referencias antes de abrir la tx.
	if in.SKU != nil {
		if existing, _ := uc.productRepo.GetBySKU(*in.SKU); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.SKU != nil {
			product.SKU = *in.SKU
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.LowStockThreshold != nil {
			product.LowStockThreshold = *in.LowStockThreshold
		}
		if in.CategoryID != nil {
			product.CategoryID = *in.CategoryID
		}
		if in.SupplierID != nil {
			product.SupplierID = *in.SupplierID
		}
		now := time.Now()
		if in.Quantity != nil {
			if _, err := uc.engine.ApplyQuantityUpdateInTx(productRepo, txRepo, product, *in.Quantity, userID, "", now); err != nil {
				return err
			}
		}
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponseWithRefs(updated)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items, err := uc.toResponses(list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista los productos con stock por debajo de su umbral.
// El filtro se evalúa en la consulta, siempre sobre el estado actual.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list)
}

// Delete elimina un producto. Las transacciones históricas no se borran en
// cascada: conservan la referencia y se renderizan con product en null.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) toResponses(list []*entity.Product) ([]dto.ProductResponse, error) {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp, err := uc.toResponseWithRefs(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return items, nil
}

func (uc *ProductUseCase) toResponseWithRefs(p *entity.Product) (*dto.ProductResponse, error) {
	category, err := uc.categoryRepo.GetByID(p.CategoryID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(p.SupplierID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, category, supplier), nil
}

func toProductResponse(p *entity.Product, category *entity.Category, supplier *entity.Supplier) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Quantity:          p.Quantity,
		Price:             p.Price,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.IsLowStock(),
		Category:          toCategoryResponse(category),
		Supplier:          toSupplierResponse(supplier),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
