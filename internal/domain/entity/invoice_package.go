package entity

import "time"

// Estado de pago de una factura importada.
const EstadoPagoPagada = 2

// EmbeddedInvoice copia desnormalizada de una factura importada dentro de un paquete.
// Las etiquetas JSON siguen el formato de los documentos guardados en la columna JSONB.
type EmbeddedInvoice struct {
	ID            string `json:"_id"`
	UUID          string `json:"uuid,omitempty"`
	Folio         string `json:"folio,omitempty"`
	RFCEmisor     string `json:"rfcEmisor,omitempty"`
	NombreEmisor  string `json:"nombreEmisor,omitempty"`
	ImporteAPagar Amount `json:"importeAPagar"`
	ImportePagado Amount `json:"importePagado"`
	Autorizada    bool   `json:"autorizada,omitempty"`
	EstadoPago    int    `json:"estadoPago,omitempty"`
	Referencia    string `json:"referencia,omitempty"`
}

// ExpenseConcept concepto de gasto de un pago en efectivo.
type ExpenseConcept struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// CashPayment pago en efectivo embebido en un paquete.
type CashPayment struct {
	ID             string          `json:"_id"`
	ImportePagado  Amount          `json:"importePagado"`
	ImporteAPagar  Amount          `json:"importeAPagar"`
	ExpenseConcept *ExpenseConcept `json:"expenseConcept,omitempty"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Fecha          *time.Time      `json:"fecha,omitempty"`
}

// InvoicesPackage paquete de facturas con sus líneas embebidas.
type InvoicesPackage struct {
	ID            string
	Folio         string
	CompanyID     string
	Facturas      []EmbeddedInvoice
	PagosEfectivo []CashPayment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ImportedInvoice documento canónico de la factura importada.
type ImportedInvoice struct {
	ID            string
	UUID          string
	Folio         string
	RFCEmisor     string
	NombreEmisor  string
	ImporteAPagar Amount
	ImportePagado Amount
	Referencia    string
	Autorizada    bool
	EstadoPago    int
}
