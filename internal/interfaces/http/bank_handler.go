package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// BankHandler maneja /banks, /bank-numbers y /bank-accounts.
type BankHandler struct {
	banks    *usecase.BankUseCase
	accounts *usecase.BankAccountUseCase
}

// NewBankHandler construye el handler inyectando los casos de uso.
func NewBankHandler(banks *usecase.BankUseCase, accounts *usecase.BankAccountUseCase) *BankHandler {
	return &BankHandler{banks: banks, accounts: accounts}
}

// Create godoc
// @Summary      Crear banco
// @Description  El nombre se recorta; duplicados sin distinguir mayúsculas ni acentos → 400.
// @Tags         banks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBankRequest  true  "Datos del banco"
// @Success      201   {object}  dto.Envelope{data=dto.BankResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/banks [post]
func (h *BankHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBankRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.banks.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar bancos
// @Tags         banks
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        search  query  string  false  "Búsqueda por nombre"
// @Param        active  query  string  false  "true | false"
// @Success      200     {object}  dto.Envelope{data=[]dto.BankResponse}
// @Router       /api/banks [get]
func (h *BankHandler) List(c *fiber.Ctx) error {
	var in dto.CatalogListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.banks.List(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// GetByID godoc
// @Summary      Obtener banco por ID
// @Tags         banks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del banco"
// @Success      200  {object}  dto.Envelope{data=dto.BankResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/banks/{id} [get]
func (h *BankHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.banks.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar banco
// @Tags         banks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del banco"
// @Param        body  body  dto.UpdateBankRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.Envelope{data=dto.BankResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/banks/{id} [put]
func (h *BankHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateBankRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.banks.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Deactivate godoc
// @Summary      Desactivar banco
// @Tags         banks
// @Security     Bearer
// @Param        id   path  string  true  "ID del banco"
// @Success      200  {object}  dto.Envelope
// @Router       /api/banks/{id} [delete]
func (h *BankHandler) Deactivate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.banks.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "banco desactivado")
}

// Activate godoc
// @Summary      Reactivar banco
// @Tags         banks
// @Security     Bearer
// @Param        id   path  string  true  "ID del banco"
// @Success      200  {object}  dto.Envelope
// @Router       /api/banks/{id}/activate [patch]
func (h *BankHandler) Activate(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.banks.Activate(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "banco activado")
}

// CreateBankNumber godoc
// @Summary      Registrar clave de ruteo entre bancos
// @Tags         bank-numbers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBankNumberRequest  true  "Banco de cargo, banco de abono y clave"
// @Success      201   {object}  dto.Envelope{data=dto.BankNumberResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/bank-numbers [post]
func (h *BankHandler) CreateBankNumber(c *fiber.Ctx) error {
	var in dto.CreateBankNumberRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.accounts.CreateBankNumber(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// ListBankNumbers godoc
// @Summary      Listar claves de ruteo
// @Tags         bank-numbers
// @Security     Bearer
// @Produce      json
// @Param        bankDebited  query  string  false  "Banco de cargo"
// @Success      200  {object}  dto.Envelope{data=[]dto.BankNumberResponse}
// @Router       /api/bank-numbers [get]
func (h *BankHandler) ListBankNumbers(c *fiber.Ctx) error {
	out, err := h.accounts.ListBankNumbers(c.UserContext(), c.Query("bankDebited"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// CreateAccount godoc
// @Summary      Registrar cuenta bancaria de una empresa
// @Tags         bank-accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBankAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.Envelope{data=dto.BankAccountResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/bank-accounts [post]
func (h *BankHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateBankAccountRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.accounts.CreateAccount(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// ListAccounts godoc
// @Summary      Cuentas bancarias de una empresa
// @Tags         bank-accounts
// @Security     Bearer
// @Produce      json
// @Param        companyId  query  string  true  "Empresa"
// @Success      200  {object}  dto.Envelope{data=[]dto.BankAccountResponse}
// @Router       /api/bank-accounts [get]
func (h *BankHandler) ListAccounts(c *fiber.Ctx) error {
	out, err := h.accounts.ListAccounts(c.UserContext(), c.Query("companyId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}
