package entity

import "time"

// RoleVisibility listas persistidas de visibilidad. Exactamente uno de UserID o RoleID viene informado.
// Una lista vacía significa "sin restricción en ese nivel", no "sin acceso".
type RoleVisibility struct {
	ID        string
	UserID    string
	RoleID    string
	Companies []string
	Brands    []string
	Branches  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
