package entity

import "time"

// Company representa una empresa/tenant. Es la raíz de la jerarquía de visibilidad.
type Company struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
