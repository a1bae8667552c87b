package entity

import "time"

// Item representa un artículo del catálogo (papel, tinta, plancha, etc.).
// El ledger solo referencia su identidad; nunca lo muta.
type Item struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
