package entity

import "time"

// Customer representa un cliente (ventas).
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
