package entity

import "time"

// Supplier representa un proveedor de productos.
// ProductCount es derivado (subselect del repositorio).
type Supplier struct {
	ID           string
	Name         string // único global
	ContactInfo  string
	Phone        string
	Email        string
	ProductCount int
	CreatedAt    time.Time
}
