package entity

import "time"

// Bank banco del catálogo. NameKey es el nombre plegado (minúsculas, sin acentos) para unicidad.
type Bank struct {
	ID        string
	Name      string
	NameKey   string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BankAccount cuenta bancaria de una empresa, usada como cuenta de cargo de los pagos.
type BankAccount struct {
	ID            string
	CompanyID     string
	BankID        string
	Bank          *Bank // poblado en lecturas
	AccountNumber string
	Clabe         string
	IsActive      bool
	CreatedAt     time.Time
}

// BankNumber tabla de ruteo: (banco de cargo, nombre del banco de abono) -> clave de 5 dígitos.
type BankNumber struct {
	ID           string
	BankDebited  string // id del banco
	BankCredited string // nombre del banco
	Number       string
	CreatedAt    time.Time
}
