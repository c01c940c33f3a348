package entity

import "time"

// Acciones válidas para Transaction.
const (
	ActionAdd    = "add"    // entrada de stock
	ActionRemove = "remove" // salida de stock
	ActionUpdate = "update" // ajuste directo de la cantidad
)

// ValidAction verifica que la acción sea una de las conocidas.
func ValidAction(action string) bool {
	return action == ActionAdd || action == ActionRemove || action == ActionUpdate
}

// Transaction es el registro de auditoría de un cambio de stock.
// Es inmutable una vez creado: solo se inserta, nunca se actualiza.
//
// Convención de Quantity: para add/remove guarda la magnitud (positiva);
// para update guarda el delta con signo (puede ser negativo). La asimetría
// es intencional y debe preservarse.
type Transaction struct {
	ID        string
	ProductID string
	UserID    string
	Action    string
	Quantity  int
	Notes     string
	Timestamp time.Time

	// Product y User se llenan en lecturas vía LEFT JOIN; quedan en nil
	// si la entidad referenciada fue eliminada.
	Product *Product
	User    *User
}
