package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// ProviderHandler maneja /providers.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Envelope{data=dto.ProviderResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/providers [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         providers
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        search  query  string  false  "Nombre o RFC"
// @Param        active  query  string  false  "true | false"
// @Success      200     {object}  dto.Envelope{data=[]dto.ProviderResponse}
// @Router       /api/providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	var in dto.CatalogListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         providers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope{data=dto.ProviderResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/providers/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Description  El RFC no se puede cambiar.
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del proveedor"
// @Param        body  body  dto.UpdateProviderRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.ProviderResponse}
// @Router       /api/providers/{id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Deactivate godoc
// @Summary      Desactivar proveedor
// @Tags         providers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Router       /api/providers/{id} [delete]
func (h *ProviderHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "proveedor desactivado")
}

// Activate godoc
// @Summary      Reactivar proveedor
// @Tags         providers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Envelope
// @Router       /api/providers/{id}/activate [patch]
func (h *ProviderHandler) Activate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Activate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "proveedor activado")
}
