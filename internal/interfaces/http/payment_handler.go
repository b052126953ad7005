package http

import (
	"context"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// paymentsService operaciones de pagos por proveedor que expone la API.
// Lo implementa *providerpayments.UseCase.
type paymentsService interface {
	GroupInvoicesByProvider(ctx context.Context, in dto.GroupInvoicesRequest) (*dto.GroupInvoicesResponse, error)
	GenerateIndividualReferences(ctx context.Context, in dto.IndividualReferencesRequest) (*dto.IndividualReferencesResponse, error)
	ListPayments(ctx context.Context, in dto.PaymentListRequest) (*dto.ListResult[dto.PaymentResponse], error)
	ListBankLayouts(ctx context.Context, in dto.BankLayoutListRequest) (*dto.ListResult[dto.BankLayoutResponse], error)
	GetBankLayout(ctx context.Context, id string) (*dto.BankLayoutResponse, error)
	RenderBankLayoutPDF(ctx context.Context, id string) ([]byte, string, error)
}

// PaymentHandler maneja /payments-by-provider.
type PaymentHandler struct {
	svc   paymentsService
	scope companyScopeResolver
}

// NewPaymentHandler construye el handler. scope acota listados y layouts a las
// empresas visibles del usuario del token.
func NewPaymentHandler(svc paymentsService, scope companyScopeResolver) *PaymentHandler {
	return &PaymentHandler{svc: svc, scope: scope}
}

// layoutVisible los layouts sin empresa solo los ve quien tiene acceso total.
func (h *PaymentHandler) layoutVisible(c *fiber.Ctx, companyID string) (bool, error) {
	ids, err := visibleCompanies(c, h.scope)
	if err != nil {
		return false, err
	}
	return ids == nil || slices.Contains(ids, companyID), nil
}

func layoutForbidden(c *fiber.Ctx) error {
	return abort(c, fiber.StatusForbidden, "COMPANY_FORBIDDEN", "el layout pertenece a una empresa fuera de la visibilidad del usuario")
}

// GroupInvoices godoc
// @Summary      Agrupar facturas por proveedor
// @Description  Crea un pago por RFC emisor con proveedor activo y un layout "grouped". Los RFC sin proveedor se devuelven en summary.skippedRfcs.
// @Tags         payments-by-provider
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GroupInvoicesRequest  true  "Paquetes y cuenta de cargo"
// @Success      201   {object}  dto.Envelope{data=dto.GroupInvoicesResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/payments-by-provider/group-invoices [post]
func (h *PaymentHandler) GroupInvoices(c *fiber.Ctx) error {
	var in dto.GroupInvoicesRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GroupInvoicesByProvider(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// GenerateIndividualReferences godoc
// @Summary      Generar referencias individuales
// @Description  Asigna una referencia única a cada factura de los paquetes y registra un layout "individual". No es idempotente.
// @Tags         payments-by-provider
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IndividualReferencesRequest  true  "Paquetes"
// @Success      201   {object}  dto.Envelope{data=dto.IndividualReferencesResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/payments-by-provider/generate-individual-references [post]
func (h *PaymentHandler) GenerateIndividualReferences(c *fiber.Ctx) error {
	var in dto.IndividualReferencesRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GenerateIndividualReferences(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar pagos por proveedor
// @Description  Sin companyId se acota a las empresas visibles del usuario.
// @Tags         payments-by-provider
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        providerRfc  query  string  false  "RFC del proveedor"
// @Param        companyId    query  string  false  "Empresa pagadora"
// @Success      200  {object}  dto.Envelope{data=[]dto.PaymentResponse}
// @Router       /api/payments-by-provider [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	var in dto.PaymentListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	if in.CompanyID == "" {
		ids, err := visibleCompanies(c, h.scope)
		if err != nil {
			return fail(c, err)
		}
		in.VisibleCompanies = ids
	}
	out, err := h.svc.ListPayments(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// ListLayouts godoc
// @Summary      Listar layouts bancarios
// @Tags         payments-by-provider
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        companyId   query  string  false  "Empresa"
// @Param        tipoLayout  query  string  false  "grouped | individual"
// @Success      200  {object}  dto.Envelope{data=[]dto.BankLayoutResponse}
// @Router       /api/payments-by-provider/bank-layouts [get]
func (h *PaymentHandler) ListLayouts(c *fiber.Ctx) error {
	var in dto.BankLayoutListRequest
	if err := parseQuery(c, &in); err != nil {
		return fail(c, err)
	}
	if in.CompanyID == "" {
		ids, err := visibleCompanies(c, h.scope)
		if err != nil {
			return fail(c, err)
		}
		in.VisibleCompanies = ids
	}
	out, err := h.svc.ListBankLayouts(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, out)
}

// GetLayout godoc
// @Summary      Detalle de un layout bancario
// @Tags         payments-by-provider
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del layout"
// @Success      200  {object}  dto.Envelope{data=dto.BankLayoutResponse}
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/payments-by-provider/bank-layouts/{id} [get]
func (h *PaymentHandler) GetLayout(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.GetBankLayout(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	ok, err := h.layoutVisible(c, out.CompanyID)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return layoutForbidden(c)
	}
	return respond(c, fiber.StatusOK, out)
}

// LayoutPDF godoc
// @Summary      PDF de un layout bancario
// @Tags         payments-by-provider
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del layout"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/payments-by-provider/bank-layouts/{id}/pdf [get]
func (h *PaymentHandler) LayoutPDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	layout, err := h.svc.GetBankLayout(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	ok, err := h.layoutVisible(c, layout.CompanyID)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return layoutForbidden(c)
	}
	content, filename, err := h.svc.RenderBankLayoutPDF(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
