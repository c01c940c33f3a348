package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Quantity solo se modifica a través del motor de transacciones;
// nunca se escribe directamente desde el CRUD de catálogo.
type Product struct {
	ID                string
	Name              string
	SKU               string // código único global
	Quantity          int    // stock actual, nunca negativo
	Price             decimal.Decimal
	LowStockThreshold int
	CategoryID        string
	SupplierID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el stock está por debajo del umbral configurado.
// Se calcula siempre en lectura, no se cachea.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.LowStockThreshold
}
