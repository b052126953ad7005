package providerpayments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRepos repositorios atados a la misma transacción.
type TxRepos struct {
	Payments  repository.PaymentsByProviderRepository
	Layouts   repository.BankLayoutRepository
	Packages  repository.InvoicePackageRepository
	Invoices  repository.ImportedInvoiceRepository
	Sequences repository.SequenceRepository
}

// Savepoint ejecuta fn dentro de un SAVEPOINT de la transacción en curso.
// Si fn falla solo se deshace lo hecho dentro del savepoint y se devuelve el error.
type Savepoint func(ctx context.Context, fn func(repos TxRepos) error) error

// TxRunner ejecuta una corrida de pagos dentro de una transacción.
type TxRunner interface {
	RunPayments(ctx context.Context, fn func(ctx context.Context, repos TxRepos, savepoint Savepoint) error) error
}

// PaymentsGroupedEvent se publica tras confirmar una corrida.
type PaymentsGroupedEvent struct {
	TipoLayout    string          `json:"tipoLayout"`
	LayoutID      string          `json:"layoutId,omitempty"`
	LayoutFolio   string          `json:"layoutFolio,omitempty"`
	CompanyID     string          `json:"companyId,omitempty"`
	PaymentIDs    []string        `json:"paymentIds,omitempty"`
	InvoicesCount int             `json:"invoicesCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// EventPublisher publicación asíncrona y best-effort de eventos de pagos.
type EventPublisher interface {
	PublishPaymentsGrouped(evt PaymentsGroupedEvent)
}

// NoopPublisher descarta los eventos (sin brokers configurados).
type NoopPublisher struct{}

func (NoopPublisher) PublishPaymentsGrouped(PaymentsGroupedEvent) {}

// LayoutPDFGenerator genera el resumen PDF de un layout.
type LayoutPDFGenerator interface {
	Generate(layout *entity.BankLayout, payments []*entity.PaymentsByProvider) ([]byte, error)
}
