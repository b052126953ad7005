package entity

import "time"

// Provider proveedor registrado. RFC único en mayúsculas; Referencia única global.
type Provider struct {
	ID             string
	CommercialName string
	BusinessName   string
	RFC            string
	BankID         string
	Bank           *Bank // poblado en lecturas
	AccountNumber  string
	Clabe          string
	Referencia     string
	Sucursal       string // id de sucursal, opcional
	SucursalName   string // poblado en lecturas
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
