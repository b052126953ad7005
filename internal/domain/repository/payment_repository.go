package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InvoicePackageRepository paquetes de facturas con líneas embebidas.
type InvoicePackageRepository interface {
	ListByIDs(ctx context.Context, ids []string) ([]*entity.InvoicesPackage, error)
	UpdateFacturas(ctx context.Context, packageID string, facturas []entity.EmbeddedInvoice) error
}

// ImportedInvoiceRepository documentos canónicos de factura.
type ImportedInvoiceRepository interface {
	// UpdateReferencia devuelve false si no existe la factura.
	UpdateReferencia(ctx context.Context, invoiceID, referencia string) (bool, error)
}

// PaymentsByProviderRepository pagos agrupados; solo inserción.
type PaymentsByProviderRepository interface {
	Create(ctx context.Context, p *entity.PaymentsByProvider) error
	ListByIDs(ctx context.Context, ids []string) ([]*entity.PaymentsByProvider, error)
	List(ctx context.Context, f PaymentFilter) ([]*entity.PaymentsByProvider, int, error)
}

// BankLayoutRepository layouts bancarios; solo inserción.
type BankLayoutRepository interface {
	Create(ctx context.Context, l *entity.BankLayout) error
	GetByID(ctx context.Context, id string) (*entity.BankLayout, error)
	List(ctx context.Context, f LayoutFilter) ([]*entity.BankLayout, int, error)
}

// SequenceRepository valores monotónicos para los códigos de pago.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
