package dto

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// GroupInvoicesRequest entrada del modo agrupado.
type GroupInvoicesRequest struct {
	PackageIDs    []string `json:"packageIds" validate:"required,min=1,dive,uuid"`
	BankAccountID string   `json:"bankAccountId" validate:"required,uuid"`
	CompanyID     string   `json:"companyId" validate:"required,uuid"`
}

// IndividualReferencesRequest entrada del modo individual.
type IndividualReferencesRequest struct {
	PackageIDs    []string `json:"packageIds" validate:"required,min=1,dive,uuid"`
	CompanyID     string   `json:"companyId" validate:"omitempty,uuid"`
	BankAccountID string   `json:"bankAccountId" validate:"omitempty,uuid"`
}

// PaymentResponse un pago por proveedor.
type PaymentResponse struct {
	ID                 string        `json:"id"`
	GroupingFolio      string        `json:"groupingFolio"`
	TotalAmount        entity.Amount `json:"totalAmount"`
	ProviderRFC        string        `json:"providerRfc"`
	ProviderName       string        `json:"providerName"`
	BranchName         string        `json:"branchName"`
	CompanyProvider    string        `json:"companyProvider"`
	BankNumber         string        `json:"bankNumber"`
	DebitedBankAccount string        `json:"debitedBankAccount"`
	Facturas           []string      `json:"facturas"`
	Referencia         string        `json:"referencia"`
	IsCashPayment      bool          `json:"isCashPayment"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// LayoutInvoiceResponse snapshot de factura en un layout individual.
type LayoutInvoiceResponse struct {
	InvoiceID    string        `json:"invoiceId"`
	PackageID    string        `json:"packageId"`
	PackageFolio string        `json:"packageFolio"`
	UUID         string        `json:"uuid"`
	Folio        string        `json:"folio"`
	RFCEmisor    string        `json:"rfcEmisor"`
	NombreEmisor string        `json:"nombreEmisor"`
	Referencia   string        `json:"referencia"`
	Importe      entity.Amount `json:"importe"`
}

// BankLayoutResponse layout bancario con conteos derivados.
type BankLayoutResponse struct {
	ID                   string                  `json:"id"`
	LayoutFolio          string                  `json:"layoutFolio"`
	TipoLayout           string                  `json:"tipoLayout"`
	CompanyID            string                  `json:"companyId,omitempty"`
	BankAccountID        string                  `json:"bankAccountId,omitempty"`
	PackageIDs           []string                `json:"packageIds"`
	Agrupaciones         []string                `json:"agrupaciones,omitempty"`
	FacturasIndividuales []LayoutInvoiceResponse `json:"facturasIndividuales,omitempty"`
	AgrupacionesCount    int                     `json:"agrupacionesCount"`
	FacturasCount        int                     `json:"facturasCount"`
	TotalAmount          entity.Amount           `json:"totalAmount"`
	TotalRegistros       int                     `json:"totalRegistros"`
	Estatus              string                  `json:"estatus"`
	CreatedAt            time.Time               `json:"createdAt"`
}

// GroupingSummary conteos de una corrida agrupada.
type GroupingSummary struct {
	GroupsFound     int           `json:"groupsFound"`
	PaymentsCreated int           `json:"paymentsCreated"`
	CashGroups      int           `json:"cashGroups"`
	TotalAmount     entity.Amount `json:"totalAmount"`
	SkippedRFCs     []string      `json:"skippedRfcs"`
}

// GroupInvoicesResponse salida del modo agrupado. Layout nil si no se pudo registrar.
type GroupInvoicesResponse struct {
	Payments []PaymentResponse   `json:"payments"`
	Layout   *BankLayoutResponse `json:"layout"`
	Summary  GroupingSummary     `json:"summary"`
}

// IndividualReferencesSummary conteos de sincronización del modo individual.
type IndividualReferencesSummary struct {
	PackagesProcessed int           `json:"packagesProcessed"`
	InvoicesUpdated   int           `json:"invoicesUpdated"`
	EmbeddedUpdated   int           `json:"embeddedUpdated"`
	CanonicalUpdated  int           `json:"canonicalUpdated"`
	TotalAmount       entity.Amount `json:"totalAmount"`
}

// IndividualReferencesResponse salida del modo individual.
type IndividualReferencesResponse struct {
	Invoices []LayoutInvoiceResponse     `json:"invoices"`
	Layout   *BankLayoutResponse         `json:"layout"`
	Summary  IndividualReferencesSummary `json:"summary"`
}

// BankLayoutListRequest filtros del listado de layouts.
type BankLayoutListRequest struct {
	PageRequest
	CompanyID  string `query:"companyId" validate:"omitempty,uuid"`
	TipoLayout string `query:"tipoLayout" validate:"omitempty,oneof=grouped individual"`
	// VisibleCompanies lo fija el handler según la visibilidad del usuario; nil = todas.
	VisibleCompanies []string `query:"-" json:"-"`
}

// PaymentListRequest filtros del listado de pagos.
type PaymentListRequest struct {
	PageRequest
	ProviderRFC string `query:"providerRfc" validate:"omitempty,max=13"`
	CompanyID   string `query:"companyId" validate:"omitempty,uuid"`
	// VisibleCompanies lo fija el handler según la visibilidad del usuario; nil = todas.
	VisibleCompanies []string `query:"-" json:"-"`
}
