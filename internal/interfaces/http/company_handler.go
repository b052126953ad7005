package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// CompanyHandler maneja /companies, /brands y /branches.
type CompanyHandler struct {
	companies *usecase.CompanyUseCase
	brands    *usecase.BrandUseCase
	branches  *usecase.BranchUseCase
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(companies *usecase.CompanyUseCase, brands *usecase.BrandUseCase, branches *usecase.BranchUseCase) *CompanyHandler {
	return &CompanyHandler{companies: companies, brands: brands, branches: branches}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Envelope{data=dto.CompanyResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.companies.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Description  403 si la empresa no está dentro de la visibilidad del usuario del token.
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=dto.CompanyResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.companies.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        search  query  string  false  "Nombre"
// @Param        active  query  string  false  "true | false"
// @Success      200     {object}  dto.Envelope{data=[]dto.CompanyResponse}
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var in dto.CatalogListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.companies.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// Deactivate godoc
// @Summary      Desactivar empresa
// @Tags         companies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.companies.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "empresa desactivada")
}

// Activate godoc
// @Summary      Reactivar empresa
// @Tags         companies
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Router       /api/companies/{id}/activate [patch]
func (h *CompanyHandler) Activate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.companies.Activate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "empresa activada")
}

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrandRequest  true  "Marca y empresas que la manejan"
// @Success      201   {object}  dto.Envelope{data=dto.BrandResponse}
// @Router       /api/brands [post]
func (h *CompanyHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.brands.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.BrandResponse}
// @Router       /api/brands [get]
func (h *CompanyHandler) ListBrands(c *fiber.Ctx) error {
	var in dto.CatalogListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.brands.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// CreateBranch godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBranchRequest  true  "Sucursal, empresa y marcas"
// @Success      201   {object}  dto.Envelope{data=dto.BranchResponse}
// @Router       /api/branches [post]
func (h *CompanyHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.branches.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// ListBranches godoc
// @Summary      Listar sucursales
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.BranchResponse}
// @Router       /api/branches [get]
func (h *CompanyHandler) ListBranches(c *fiber.Ctx) error {
	var in dto.CatalogListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.branches.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}
