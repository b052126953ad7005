package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// BankRepository puerto de persistencia del catálogo de bancos.
type BankRepository interface {
	Create(ctx context.Context, bank *entity.Bank) error
	GetByID(ctx context.Context, id string) (*entity.Bank, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Bank, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Bank, int, error)
	Update(ctx context.Context, bank *entity.Bank) error
	SetActive(ctx context.Context, id string, active bool) error
}

// BankAccountRepository cuentas bancarias de las empresas.
type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	// GetByID devuelve la cuenta con Bank poblado.
	GetByID(ctx context.Context, id string) (*entity.BankAccount, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.BankAccount, error)
}

// BankNumberRepository tabla de claves de ruteo entre bancos.
type BankNumberRepository interface {
	Create(ctx context.Context, bn *entity.BankNumber) error
	Find(ctx context.Context, bankDebitedID, bankCreditedName string) (*entity.BankNumber, error)
	List(ctx context.Context, bankDebitedID string) ([]*entity.BankNumber, error)
}

// ProviderRepository catálogo de proveedores.
type ProviderRepository interface {
	Create(ctx context.Context, p *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	GetByRFC(ctx context.Context, rfc string) (*entity.Provider, error)
	// GetActiveByRFC proveedor activo con Bank y SucursalName poblados.
	GetActiveByRFC(ctx context.Context, rfc string) (*entity.Provider, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Provider, int, error)
	Update(ctx context.Context, p *entity.Provider) error
	SetActive(ctx context.Context, id string, active bool) error
}
