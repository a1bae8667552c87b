package entity

import "time"

// Supplier representa un proveedor; los lotes llevan su procedencia.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
