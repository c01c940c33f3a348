package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	SKU               string          `json:"sku" validate:"required,min=1,max=50"`
	Quantity          int             `json:"quantity" validate:"min=0"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold *int            `json:"low_stock_threshold" validate:"omitempty,min=0"`
	CategoryID        string          `json:"category_id" validate:"required"`
	SupplierID        string          `json:"supplier_id" validate:"required"`
}

// UpdateProductRequest entrada para actualización parcial de un producto.
// Si Quantity viene y difiere del valor actual, el cambio pasa por el motor
// de transacciones (acción update) para no romper la auditoría.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU               *string          `json:"sku" validate:"omitempty,min=1,max=50"`
	Quantity          *int             `json:"quantity" validate:"omitempty,min=0"`
	Price             *decimal.Decimal `json:"price"`
	LowStockThreshold *int             `json:"low_stock_threshold" validate:"omitempty,min=0"`
	CategoryID        *string          `json:"category_id"`
	SupplierID        *string          `json:"supplier_id"`
}

// ProductResponse salida de un producto con categoría y proveedor anidados.
type ProductResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	SKU               string            `json:"sku"`
	Quantity          int               `json:"quantity"`
	Price             decimal.Decimal   `json:"price"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	IsLowStock        bool              `json:"is_low_stock"`
	Category          *CategoryResponse `json:"category"`
	Supplier          *SupplierResponse `json:"supplier"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
