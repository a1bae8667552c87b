package entity

import "time"

// Tipos de ubicación física o lógica.
const (
	LocationTypeMainDepot = "main_depot"
	LocationTypeWorkshop  = "workshop"
	LocationTypeStore     = "store"
	LocationTypeSupplier  = "supplier"
	LocationTypeCustomer  = "customer"
)

// Location representa un nodo direccionable de stock (bodega, taller, tienda...).
// El tipo solo afecta presentación; el ledger la trata como identidad opaca.
type Location struct {
	ID        string
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidLocationType verifica que el tipo sea uno de los soportados.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeMainDepot, LocationTypeWorkshop, LocationTypeStore,
		LocationTypeSupplier, LocationTypeCustomer:
		return true
	}
	return false
}
