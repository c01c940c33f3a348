package dto

import "time"

// RecordTransactionRequest body para POST /api/transactions.
// Para add/remove, Quantity es la magnitud del cambio; para update es la
// nueva cantidad absoluta del producto.
type RecordTransactionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Action    string `json:"action" validate:"required,oneof=add remove update"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// TransactionProductRef referencia mínima al producto de una transacción.
type TransactionProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// TransactionUserRef referencia mínima al usuario que registró la transacción.
type TransactionUserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TransactionResponse salida de una transacción del libro de auditoría.
// Product y User pueden ser null si la entidad referenciada fue eliminada.
type TransactionResponse struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action"`
	Quantity  int                    `json:"quantity"`
	Notes     string                 `json:"notes"`
	Product   *TransactionProductRef `json:"product"`
	User      *TransactionUserRef    `json:"user"`
	Timestamp time.Time              `json:"timestamp"`
}

// TransactionListResponse lista de transacciones (más recientes primero).
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
