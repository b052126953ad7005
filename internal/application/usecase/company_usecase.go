package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/textnorm"
)

// CompanyAccess consulta de visibilidad sobre una empresa.
type CompanyAccess interface {
	HasAccessToCompany(ctx context.Context, userID, companyID string) (bool, error)
}

// StructureInvalidator invalida las estructuras de visibilidad cacheadas.
// Cualquier alta o cambio de estado en empresas, marcas o sucursales debe llamarlo.
type StructureInvalidator interface {
	Bump(ctx context.Context) error
}

// invalidateStructures la escritura ya se confirmó: un fallo de la caché solo se registra.
func invalidateStructures(ctx context.Context, inv StructureInvalidator) {
	if inv == nil {
		return
	}
	if err := inv.Bump(ctx); err != nil {
		log.Warn().Err(err).Msg("invalidar caché de visibilidad")
	}
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo       repository.CompanyRepository
	access     CompanyAccess
	structures StructureInvalidator
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia, el verificador de
// visibilidad y la caché de estructuras (nil = sin caché).
func NewCompanyUseCase(repo repository.CompanyRepository, access CompanyAccess, structures StructureInvalidator) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, access: access, structures: structures}
}

// Create crea una nueva empresa activa.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := textnorm.TrimName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	invalidateStructures(ctx, uc.structures)
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID si el usuario la tiene visible.
// userID vacío (llamada interna) no se filtra.
func (uc *CompanyUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CompanyResponse, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: id de empresa inválido", domain.ErrInvalidInput)
	}
	if userID != "" && uc.access != nil {
		ok, err := uc.access.HasAccessToCompany(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: empresa fuera de la visibilidad del usuario", domain.ErrForbidden)
		}
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, in dto.CatalogListRequest) (*dto.ListResult[dto.CompanyResponse], error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, listFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.ListResult[dto.CompanyResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

// Deactivate desactiva la empresa.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.setActive(ctx, id, false)
}

// Activate reactiva la empresa.
func (uc *CompanyUseCase) Activate(ctx context.Context, id string) error {
	return uc.setActive(ctx, id, true)
}

func (uc *CompanyUseCase) setActive(ctx context.Context, id string, active bool) error {
	if !isUUID(id) {
		return fmt.Errorf("%w: id de empresa inválido", domain.ErrInvalidInput)
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	invalidateStructures(ctx, uc.structures)
	return nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

func listFilter(in dto.CatalogListRequest) repository.ListFilter {
	return repository.ListFilter{
		Search: textnorm.TrimName(in.Search),
		Active: in.ActiveFilter(),
		Limit:  in.Limit,
		Offset: in.Offset(),
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// uniqueUUIDs valida y deduplica una lista de ids conservando el orden.
func uniqueUUIDs(field string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s contiene un id inválido %q", domain.ErrInvalidInput, field, id)
		}
		key := parsed.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
