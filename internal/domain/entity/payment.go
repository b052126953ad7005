package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentsByProvider un pago agrupado por proveedor. Solo inserción, nunca se actualiza.
type PaymentsByProvider struct {
	ID                 string
	GroupingFolio      string
	TotalAmount        decimal.Decimal
	ProviderRFC        string
	ProviderName       string
	BranchName         string
	CompanyProvider    string // id de la empresa que paga
	BankNumber         string
	DebitedBankAccount string // id de la cuenta de cargo
	Facturas           []string
	Referencia         string
	IsCashPayment      bool
	CreatedAt          time.Time
}

// Tipos y estatus de BankLayout.
const (
	LayoutGrouped    = "grouped"
	LayoutIndividual = "individual"

	LayoutStatusGenerated = "generado"
	LayoutStatusSent      = "enviado"
	LayoutStatusApplied   = "aplicado"
	LayoutStatusCancelled = "cancelado"
)

// LayoutInvoice snapshot de una factura tocada en modo individual.
type LayoutInvoice struct {
	InvoiceID    string          `json:"invoiceId"`
	PackageID    string          `json:"packageId"`
	PackageFolio string          `json:"packageFolio"`
	UUID         string          `json:"uuid"`
	Folio        string          `json:"folio"`
	RFCEmisor    string          `json:"rfcEmisor"`
	NombreEmisor string          `json:"nombreEmisor"`
	Referencia   string          `json:"referencia"`
	Importe      decimal.Decimal `json:"importe"`
}

// BankLayout registro resumen de una corrida de agrupación o de referencias individuales.
type BankLayout struct {
	ID                   string
	LayoutFolio          string
	TipoLayout           string
	CompanyID            string // vacío si no se informó (modo individual)
	BankAccountID        string
	PackageIDs           []string
	Agrupaciones         []string        // solo grouped
	FacturasIndividuales []LayoutInvoice // solo individual
	TotalAmount          decimal.Decimal
	TotalRegistros       int
	Estatus              string
	CreatedAt            time.Time
}
