package entity

import "time"

// Category representa una categoría de productos.
// ProductCount es derivado: lo llena el repositorio con un subselect,
// no se mantiene en memoria.
type Category struct {
	ID           string
	Name         string // único global
	Description  string
	ProductCount int
	CreatedAt    time.Time
}
