package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/textnorm"
)

// BrandUseCase alta y listado de marcas.
type BrandUseCase struct {
	repo       repository.BrandRepository
	structures StructureInvalidator
}

func NewBrandUseCase(repo repository.BrandRepository, structures StructureInvalidator) *BrandUseCase {
	return &BrandUseCase{repo: repo, structures: structures}
}

// Create crea la marca y la relaciona con las empresas indicadas.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	name := textnorm.TrimName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.CategoryID != "" && !isUUID(in.CategoryID) {
		return nil, fmt.Errorf("%w: categoryId inválido", domain.ErrInvalidInput)
	}
	companyIDs, err := uniqueUUIDs("companyIds", in.CompanyIDs)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	brand := &entity.Brand{
		ID:         uuid.New().String(),
		Name:       name,
		CategoryID: in.CategoryID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, brand, companyIDs); err != nil {
		return nil, err
	}
	invalidateStructures(ctx, uc.structures)
	out := toBrandResponse(brand)
	out.CompanyIDs = companyIDs
	return out, nil
}

// List marcas paginadas.
func (uc *BrandUseCase) List(ctx context.Context, in dto.CatalogListRequest) (*dto.ListResult[dto.BrandResponse], error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, listFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return &dto.ListResult[dto.BrandResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{ID: b.ID, Name: b.Name, CategoryID: b.CategoryID, IsActive: b.IsActive}
}

// BranchUseCase alta y listado de sucursales.
type BranchUseCase struct {
	repo       repository.BranchRepository
	companies  repository.CompanyRepository
	structures StructureInvalidator
}

func NewBranchUseCase(repo repository.BranchRepository, companies repository.CompanyRepository, structures StructureInvalidator) *BranchUseCase {
	return &BranchUseCase{repo: repo, companies: companies, structures: structures}
}

// Create crea la sucursal en la empresa y la liga a las marcas indicadas.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	name := textnorm.TrimName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !isUUID(in.CompanyID) {
		return nil, fmt.Errorf("%w: companyId inválido", domain.ErrInvalidInput)
	}
	brandIDs, err := uniqueUUIDs("brandIds", in.BrandIDs)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      name,
		CompanyID: company.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, branch, brandIDs); err != nil {
		return nil, err
	}
	invalidateStructures(ctx, uc.structures)
	out := toBranchResponse(branch)
	out.BrandIDs = brandIDs
	return out, nil
}

// List sucursales paginadas.
func (uc *BranchUseCase) List(ctx context.Context, in dto.CatalogListRequest) (*dto.ListResult[dto.BranchResponse], error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, listFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.ListResult[dto.BranchResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{ID: b.ID, Name: b.Name, CompanyID: b.CompanyID, IsActive: b.IsActive}
}
