package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Company, int, error)
	// ListActive empresas activas; con categoryID solo las que tienen alguna marca activa de esa categoría.
	ListActive(ctx context.Context, categoryID string) ([]*entity.Company, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// BrandRepository puerto de persistencia para Brand y la relación company_brands.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand, companyIDs []string) error
	List(ctx context.Context, f ListFilter) ([]*entity.Brand, int, error)
	// ListActiveByCompany marcas activas relacionadas con la empresa; categoryID opcional.
	ListActiveByCompany(ctx context.Context, companyID, categoryID string) ([]*entity.Brand, error)
}

// BranchRepository puerto de persistencia para Branch y la relación branch_brands.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch, brandIDs []string) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Branch, int, error)
	// ListActiveByCompanyAndBrand sucursales activas de la empresa; con brandID solo las ligadas a esa marca.
	ListActiveByCompanyAndBrand(ctx context.Context, companyID, brandID string) ([]*entity.Branch, error)
}
