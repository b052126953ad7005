package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/sat"
	"github.com/jhoicas/backoffice-api/pkg/textnorm"
)

// ProviderUseCase catálogo de proveedores. El RFC se guarda normalizado y es único.
type ProviderUseCase struct {
	repo  repository.ProviderRepository
	banks repository.BankRepository
}

func NewProviderUseCase(repo repository.ProviderRepository, banks repository.BankRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, banks: banks}
}

// Create valida el RFC, evita duplicados y crea el proveedor activo.
// La unicidad de referencia la garantiza el índice único (23505 -> domain.ErrDuplicate).
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	rfc := sat.NormalizeRFC(in.RFC)
	if err := sat.ValidateRFC(rfc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	existing, err := uc.repo.GetByRFC(ctx, rfc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un proveedor con RFC %s", domain.ErrDuplicate, rfc)
	}
	if err := uc.checkBank(ctx, in.BankID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Provider{
		ID:             uuid.New().String(),
		CommercialName: textnorm.TrimName(in.CommercialName),
		BusinessName:   textnorm.TrimName(in.BusinessName),
		RFC:            rfc,
		BankID:         in.BankID,
		AccountNumber:  strings.TrimSpace(in.AccountNumber),
		Clabe:          in.Clabe,
		Referencia:     strings.TrimSpace(in.Referencia),
		Sucursal:       in.Sucursal,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.BusinessName == "" {
		return nil, fmt.Errorf("%w: businessName es obligatorio", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

func (uc *ProviderUseCase) checkBank(ctx context.Context, bankID string) error {
	if bankID == "" {
		return nil
	}
	if !isUUID(bankID) {
		return fmt.Errorf("%w: bankId inválido", domain.ErrInvalidInput)
	}
	bank, err := uc.banks.GetByID(ctx, bankID)
	if err != nil {
		return err
	}
	if bank == nil {
		return fmt.Errorf("%w: banco no encontrado", domain.ErrNotFound)
	}
	return nil
}

func (uc *ProviderUseCase) get(ctx context.Context, id string) (*entity.Provider, error) {
	if !isUUID(id) {
		return nil, fmt.Errorf("%w: id de proveedor inválido", domain.ErrInvalidInput)
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: proveedor no encontrado", domain.ErrNotFound)
	}
	return p, nil
}

// GetByID detalle de un proveedor.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// List proveedores paginados; search busca en nombres y RFC.
func (uc *ProviderUseCase) List(ctx context.Context, in dto.CatalogListRequest) (*dto.ListResult[dto.ProviderResponse], error) {
	in.Normalize()
	list, total, err := uc.repo.List(ctx, listFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProviderResponse(p))
	}
	return &dto.ListResult[dto.ProviderResponse]{Items: items, Pagination: dto.NewPagination(in.PageRequest, total)}, nil
}

// Update aplica los campos presentes. El RFC no se modifica.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CommercialName != nil {
		p.CommercialName = textnorm.TrimName(*in.CommercialName)
	}
	if in.BusinessName != nil {
		name := textnorm.TrimName(*in.BusinessName)
		if name == "" {
			return nil, fmt.Errorf("%w: businessName no puede quedar vacío", domain.ErrInvalidInput)
		}
		p.BusinessName = name
	}
	if in.BankID != nil {
		if err := uc.checkBank(ctx, *in.BankID); err != nil {
			return nil, err
		}
		p.BankID = *in.BankID
	}
	if in.AccountNumber != nil {
		p.AccountNumber = strings.TrimSpace(*in.AccountNumber)
	}
	if in.Clabe != nil {
		p.Clabe = *in.Clabe
	}
	if in.Referencia != nil {
		p.Referencia = strings.TrimSpace(*in.Referencia)
	}
	if in.Sucursal != nil {
		p.Sucursal = *in.Sucursal
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProviderResponse(p), nil
}

// Deactivate baja lógica; el proveedor deja de participar en la agrupación de pagos.
func (uc *ProviderUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// Activate reactiva un proveedor.
func (uc *ProviderUseCase) Activate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, true)
}

func toProviderResponse(p *entity.Provider) *dto.ProviderResponse {
	return &dto.ProviderResponse{
		ID:             p.ID,
		CommercialName: p.CommercialName,
		BusinessName:   p.BusinessName,
		RFC:            p.RFC,
		BankID:         p.BankID,
		AccountNumber:  p.AccountNumber,
		Clabe:          p.Clabe,
		Referencia:     p.Referencia,
		Sucursal:       p.Sucursal,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
