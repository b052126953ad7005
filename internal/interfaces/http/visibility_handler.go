package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

// visibilityService lo implementa *rolevisibility.UseCase.
type visibilityService interface {
	companyAccessChecker
	GetVisibility(ctx context.Context, userID string) (*dto.VisibilityResponse, error)
	UpdateVisibility(ctx context.Context, userID string, in dto.UpdateVisibilityRequest) (*dto.VisibilityResponse, error)
	GetHierarchicalStructure(ctx context.Context, userID string) (*visibility.Structure, error)
	GetUserVisibilityForSelects(ctx context.Context, userID string) (*dto.SelectsResponse, error)
	CheckAccess(ctx context.Context, userID string, in dto.CheckAccessRequest) (*dto.CheckAccessResponse, error)
	CascadeCompanies(ctx context.Context, userID, categoryID string) ([]dto.OptionResponse, error)
	CascadeBrands(ctx context.Context, userID, companyID, categoryID string) ([]dto.OptionResponse, error)
	CascadeBranches(ctx context.Context, userID, companyID, brandID string) ([]dto.OptionResponse, error)
}

// VisibilityHandler maneja /role-visibility.
type VisibilityHandler struct {
	svc visibilityService
}

func NewVisibilityHandler(svc visibilityService) *VisibilityHandler {
	return &VisibilityHandler{svc: svc}
}

// Get godoc
// @Summary      Registro de visibilidad resuelto
// @Description  Devuelve el registro aplicado al usuario y su origen (user, role o none).
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=dto.VisibilityResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/role-visibility/{userId} [get]
func (h *VisibilityHandler) Get(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GetVisibility(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar visibilidad de un usuario
// @Description  Solo administradores. Lista vacía = sin restricción en ese nivel.
// @Tags         role-visibility
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string                       true  "ID del usuario"
// @Param        body    body  dto.UpdateVisibilityRequest  true  "Listas de ids"
// @Success      200  {object}  dto.Envelope{data=dto.VisibilityResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/role-visibility/{userId} [put]
func (h *VisibilityHandler) Update(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateVisibilityRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.UpdateVisibility(c.UserContext(), userID, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Structure godoc
// @Summary      Estructura jerárquica visible
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=visibility.Structure}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/role-visibility/{userId}/structure [get]
func (h *VisibilityHandler) Structure(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GetHierarchicalStructure(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Selects godoc
// @Summary      Ids permitidos para selects
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=dto.SelectsResponse}
// @Router       /api/role-visibility/{userId}/selects [get]
func (h *VisibilityHandler) Selects(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GetUserVisibilityForSelects(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CheckAccess godoc
// @Summary      Comprobar acceso a empresa, marca y sucursal
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId     path   string  true   "ID del usuario"
// @Param        companyId  query  string  false  "Empresa"
// @Param        brandId    query  string  false  "Marca"
// @Param        branchId   query  string  false  "Sucursal"
// @Success      200  {object}  dto.Envelope{data=dto.CheckAccessResponse}
// @Router       /api/role-visibility/{userId}/check-access [get]
func (h *VisibilityHandler) CheckAccess(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	var in dto.CheckAccessRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.CheckAccess(c.UserContext(), userID, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CascadeCompanies godoc
// @Summary      Empresas para select en cascada
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId      query  string  false  "Filtrar por visibilidad del usuario"
// @Param        categoryId  query  string  false  "Categoría"
// @Success      200  {object}  dto.Envelope{data=[]dto.OptionResponse}
// @Router       /api/role-visibility/cascade/companies [get]
func (h *VisibilityHandler) CascadeCompanies(c *fiber.Ctx) error {
	var in dto.CascadeRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.CascadeCompanies(c.UserContext(), in.UserID, in.CategoryID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CascadeBrands godoc
// @Summary      Marcas para select en cascada
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId      query  string  false  "Filtrar por visibilidad del usuario"
// @Param        companyId   query  string  false  "Empresa"
// @Param        categoryId  query  string  false  "Categoría"
// @Success      200  {object}  dto.Envelope{data=[]dto.OptionResponse}
// @Router       /api/role-visibility/cascade/brands [get]
func (h *VisibilityHandler) CascadeBrands(c *fiber.Ctx) error {
	var in dto.CascadeRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.CascadeBrands(c.UserContext(), in.UserID, in.CompanyID, in.CategoryID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CascadeBranches godoc
// @Summary      Sucursales para select en cascada
// @Tags         role-visibility
// @Security     Bearer
// @Produce      json
// @Param        userId     query  string  false  "Filtrar por visibilidad del usuario"
// @Param        companyId  query  string  false  "Empresa"
// @Param        brandId    query  string  false  "Marca"
// @Success      200  {object}  dto.Envelope{data=[]dto.OptionResponse}
// @Router       /api/role-visibility/cascade/branches [get]
func (h *VisibilityHandler) CascadeBranches(c *fiber.Ctx) error {
	var in dto.CascadeRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.CascadeBranches(c.UserContext(), in.UserID, in.CompanyID, in.BrandID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
