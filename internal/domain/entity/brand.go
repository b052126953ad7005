package entity

import "time"

// Brand marca comercial. Se relaciona N:M con Company (company_brands) y con Branch (branch_brands).
type Brand struct {
	ID         string
	Name       string
	CategoryID string // vacío si no tiene categoría
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
