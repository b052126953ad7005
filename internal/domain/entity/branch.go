package entity

import "time"

// Branch sucursal de una empresa.
type Branch struct {
	ID        string
	Name      string
	CompanyID string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
