package entity

import "time"

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
