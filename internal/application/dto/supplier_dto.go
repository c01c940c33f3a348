package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	ContactInfo string `json:"contact_info"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// UpdateSupplierRequest entrada para actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	ContactInfo *string `json:"contact_info"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactInfo  string    `json:"contact_info"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
