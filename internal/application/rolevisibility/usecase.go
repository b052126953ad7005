// Package rolevisibility resuelve qué empresas, marcas y sucursales puede ver cada usuario.
package rolevisibility

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

// máximo de empresas cargadas en paralelo al armar la estructura.
const structureConcurrency = 4

// Deps dependencias del caso de uso. Cache es opcional.
type Deps struct {
	Users      repository.UserRepository
	Visibility repository.RoleVisibilityRepository
	Companies  repository.CompanyRepository
	Brands     repository.BrandRepository
	Branches   repository.BranchRepository
	Cache      StructureCache
	Logger     zerolog.Logger
}

// UseCase casos de uso de visibilidad jerárquica.
type UseCase struct {
	users      repository.UserRepository
	visibility repository.RoleVisibilityRepository
	companies  repository.CompanyRepository
	brands     repository.BrandRepository
	branches   repository.BranchRepository
	cache      StructureCache
	log        zerolog.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		users:      d.Users,
		visibility: d.Visibility,
		companies:  d.Companies,
		brands:     d.Brands,
		branches:   d.Branches,
		cache:      d.Cache,
		log:        d.Logger,
		now:        time.Now,
	}
}

// Rules resuelve las reglas del usuario: registro propio, si no el de su rol, si no acceso total.
// El usuario debe existir.
func (uc *UseCase) Rules(ctx context.Context, userID string) (visibility.Rules, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return visibility.Rules{}, fmt.Errorf("%w: userId inválido", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return visibility.Rules{}, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return visibility.Rules{}, domain.ErrUserNotFound
	}

	rv, err := uc.visibility.GetByUserID(ctx, userID)
	if err != nil {
		return visibility.Rules{}, fmt.Errorf("get visibility by user: %w", err)
	}
	if rv == nil && user.RoleID != "" {
		rv, err = uc.visibility.GetByRoleID(ctx, user.RoleID)
		if err != nil {
			return visibility.Rules{}, fmt.Errorf("get visibility by role: %w", err)
		}
	}
	return visibility.RulesFrom(rv), nil
}

// optionalRules sin userID no se filtra.
func (uc *UseCase) optionalRules(ctx context.Context, userID string) (visibility.Rules, error) {
	if userID == "" {
		return visibility.FullAccess(), nil
	}
	return uc.Rules(ctx, userID)
}

// GetHierarchicalStructure árbol empresa → marca → sucursal visible para el usuario.
// La versión de caché se lee antes que las reglas: un Bump posterior deja obsoleta la entrada escrita.
func (uc *UseCase) GetHierarchicalStructure(ctx context.Context, userID string) (*visibility.Structure, error) {
	useCache := uc.cache != nil
	var ver int64
	if useCache {
		v, err := uc.cache.Version(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("visibility cache version")
			useCache = false
		}
		ver = v
	}

	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}

	if useCache {
		cached, ok, err := uc.cache.Get(ctx, userID, ver)
		if err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("visibility cache get")
		} else if ok {
			return cached, nil
		}
	}

	active, err := uc.companies.ListActive(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	candidates := visibility.CandidateCompanies(rules, active)

	trees := make([]visibility.CompanyTree, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(structureConcurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			tree, err := uc.loadCompanyTree(gctx, rules, c)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	structure := &visibility.Structure{
		HasFullAccess: rules.HasFullAccess(),
		Companies:     make(map[string]visibility.CompanyNode, len(trees)),
	}
	for _, tree := range trees {
		structure.Companies[tree.Company.ID] = visibility.BuildCompanyNode(rules, tree)
	}

	if useCache {
		if err := uc.cache.Set(ctx, userID, ver, structure); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("visibility cache set")
		}
	}
	return structure, nil
}

func (uc *UseCase) loadCompanyTree(ctx context.Context, rules visibility.Rules, c *entity.Company) (visibility.CompanyTree, error) {
	brands, err := uc.brands.ListActiveByCompany(ctx, c.ID, "")
	if err != nil {
		return visibility.CompanyTree{}, fmt.Errorf("list brands of company %s: %w", c.ID, err)
	}
	tree := visibility.CompanyTree{
		Company:         c,
		Brands:          brands,
		BranchesByBrand: make(map[string][]*entity.Branch, len(brands)),
	}
	for _, b := range brands {
		if !rules.AllowsBrand(b.ID) {
			continue
		}
		branches, err := uc.branches.ListActiveByCompanyAndBrand(ctx, c.ID, b.ID)
		if err != nil {
			return visibility.CompanyTree{}, fmt.Errorf("list branches of company %s brand %s: %w", c.ID, b.ID, err)
		}
		tree.BranchesByBrand[b.ID] = branches
	}
	return tree, nil
}

// GetUserVisibilityForSelects ids permitidos por nivel; vacíos cuando no hay restricción.
func (uc *UseCase) GetUserVisibilityForSelects(ctx context.Context, userID string) (*dto.SelectsResponse, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SelectsResponse{
		HasFullAccess: rules.HasFullAccess(),
		Companies:     nonNil(rules.Companies.IDs()),
		Brands:        nonNil(rules.Brands.IDs()),
		Branches:      nonNil(rules.Branches.IDs()),
	}, nil
}

// CheckAccess comprueba cada nivel por separado; un nivel sin id cuenta como permitido.
func (uc *UseCase) CheckAccess(ctx context.Context, userID string, in dto.CheckAccessRequest) (*dto.CheckAccessResponse, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CheckAccessResponse{
		Company: in.CompanyID == "" || rules.AllowsCompany(in.CompanyID),
		Brand:   in.BrandID == "" || rules.AllowsBrand(in.BrandID),
		Branch:  in.BranchID == "" || rules.AllowsBranch(in.BranchID),
	}
	out.HasAccess = out.Company && out.Brand && out.Branch
	return out, nil
}

// HasAccessToCompany comprobación puntual de empresa.
func (uc *UseCase) HasAccessToCompany(ctx context.Context, userID, companyID string) (bool, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return false, err
	}
	return rules.AllowsCompany(companyID), nil
}

// HasAccessToBrand comprobación puntual de marca.
func (uc *UseCase) HasAccessToBrand(ctx context.Context, userID, brandID string) (bool, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return false, err
	}
	return rules.AllowsBrand(brandID), nil
}

// HasAccessToBranch comprobación puntual de sucursal.
func (uc *UseCase) HasAccessToBranch(ctx context.Context, userID, branchID string) (bool, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return false, err
	}
	return rules.AllowsBranch(branchID), nil
}

// GetVisibility registro resuelto y su origen.
func (uc *UseCase) GetVisibility(ctx context.Context, userID string) (*dto.VisibilityResponse, error) {
	rules, err := uc.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toVisibilityResponse(userID, rules), nil
}

// UpdateVisibility crea o reemplaza el registro propio del usuario e invalida la caché.
func (uc *UseCase) UpdateVisibility(ctx context.Context, userID string, in dto.UpdateVisibilityRequest) (*dto.VisibilityResponse, error) {
	if _, err := uc.Rules(ctx, userID); err != nil {
		return nil, err
	}
	companies, err := cleanIDs("companies", in.Companies)
	if err != nil {
		return nil, err
	}
	brands, err := cleanIDs("brands", in.Brands)
	if err != nil {
		return nil, err
	}
	branches, err := cleanIDs("branches", in.Branches)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	rv := &entity.RoleVisibility{
		ID:        uuid.New().String(),
		UserID:    userID,
		Companies: companies,
		Brands:    brands,
		Branches:  branches,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.visibility.UpsertForUser(ctx, rv); err != nil {
		return nil, fmt.Errorf("upsert visibility: %w", err)
	}
	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("visibility cache bump")
		}
	}
	uc.log.Info().
		Str("user_id", userID).
		Int("companies", len(companies)).
		Int("brands", len(brands)).
		Int("branches", len(branches)).
		Msg("visibility updated")
	return toVisibilityResponse(userID, visibility.RulesFrom(rv)), nil
}

// CascadeCompanies empresas activas visibles; categoryID opcional.
func (uc *UseCase) CascadeCompanies(ctx context.Context, userID, categoryID string) ([]dto.OptionResponse, error) {
	rules, err := uc.optionalRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.companies.ListActive(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	out := make([]dto.OptionResponse, 0, len(list))
	for _, c := range list {
		if rules.AllowsCompany(c.ID) {
			out = append(out, dto.OptionResponse{ID: c.ID, Name: c.Name})
		}
	}
	return out, nil
}

// CascadeBrands marcas activas de la empresa visibles para el usuario.
func (uc *UseCase) CascadeBrands(ctx context.Context, userID, companyID, categoryID string) ([]dto.OptionResponse, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: companyId es obligatorio", domain.ErrInvalidInput)
	}
	rules, err := uc.optionalRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []dto.OptionResponse{}
	if !rules.AllowsCompany(companyID) {
		return out, nil
	}
	list, err := uc.brands.ListActiveByCompany(ctx, companyID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	for _, b := range list {
		if rules.AllowsBrand(b.ID) {
			out = append(out, dto.OptionResponse{ID: b.ID, Name: b.Name})
		}
	}
	return out, nil
}

// CascadeBranches sucursales activas de la empresa (y marca, si se indica) visibles para el usuario.
func (uc *UseCase) CascadeBranches(ctx context.Context, userID, companyID, brandID string) ([]dto.OptionResponse, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: companyId es obligatorio", domain.ErrInvalidInput)
	}
	rules, err := uc.optionalRules(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []dto.OptionResponse{}
	if !rules.AllowsCompany(companyID) || (brandID != "" && !rules.AllowsBrand(brandID)) {
		return out, nil
	}
	list, err := uc.branches.ListActiveByCompanyAndBrand(ctx, companyID, brandID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	for _, br := range list {
		if rules.AllowsBranch(br.ID) {
			out = append(out, dto.OptionResponse{ID: br.ID, Name: br.Name})
		}
	}
	return out, nil
}

// cleanIDs valida UUIDs y elimina duplicados conservando el orden.
func cleanIDs(field string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s contiene un id inválido %q", domain.ErrInvalidInput, field, id)
		}
		key := parsed.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func toVisibilityResponse(userID string, rules visibility.Rules) *dto.VisibilityResponse {
	return &dto.VisibilityResponse{
		UserID:        userID,
		Source:        string(rules.Source),
		HasFullAccess: rules.HasFullAccess(),
		Companies:     nonNil(rules.Companies.IDs()),
		Brands:        nonNil(rules.Brands.IDs()),
		Branches:      nonNil(rules.Branches.IDs()),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
