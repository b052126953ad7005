package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/providerpayments"
	"github.com/jhoicas/backoffice-api/internal/application/rolevisibility"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Payments     *providerpayments.UseCase
	Visibility   *rolevisibility.UseCase
	CompanyUC    *usecase.CompanyUseCase
	BrandUC      *usecase.BrandUseCase
	BranchUC     *usecase.BranchUseCase
	BankUC       *usecase.BankUseCase
	BankAccounts *usecase.BankAccountUseCase
	ProviderUC   *usecase.ProviderUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo /api va detrás del JWT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Pagos por proveedor
	RegisterPaymentRoutes(api, NewPaymentHandler(deps.Payments, deps.Visibility), deps.Visibility)

	// Visibilidad por rol
	RegisterVisibilityRoutes(api, NewVisibilityHandler(deps.Visibility))

	// Catálogos
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.BrandUC, deps.BranchUC)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Delete("/:id", companyHandler.Deactivate)
	companies.Patch("/:id/activate", companyHandler.Activate)

	api.Post("/brands", companyHandler.CreateBrand)
	api.Get("/brands", companyHandler.ListBrands)
	api.Post("/branches", companyHandler.CreateBranch)
	api.Get("/branches", companyHandler.ListBranches)

	bankHandler := NewBankHandler(deps.BankUC, deps.BankAccounts)
	banks := api.Group("/banks")
	banks.Post("/", bankHandler.Create)
	banks.Get("/", bankHandler.List)
	banks.Get("/:id", bankHandler.GetByID)
	banks.Put("/:id", bankHandler.Update)
	banks.Delete("/:id", bankHandler.Deactivate)
	banks.Patch("/:id/activate", bankHandler.Activate)

	api.Post("/bank-numbers", bankHandler.CreateBankNumber)
	api.Get("/bank-numbers", bankHandler.ListBankNumbers)
	api.Post("/bank-accounts", bankHandler.CreateAccount)
	api.Get("/bank-accounts", RequireCompanyAccess(CompanyFromQuery("companyId"), deps.Visibility), bankHandler.ListAccounts)

	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers := api.Group("/providers")
	providers.Post("/", providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", providerHandler.Update)
	providers.Delete("/:id", providerHandler.Deactivate)
	providers.Patch("/:id/activate", providerHandler.Activate)
}

// RegisterPaymentRoutes monta /payments-by-provider. Las operaciones sobre una
// empresa exigen que esté dentro de la visibilidad del usuario; sin companyId el
// handler acota listados y layouts a las empresas visibles.
func RegisterPaymentRoutes(r fiber.Router, h *PaymentHandler, access companyAccessChecker) {
	g := r.Group("/payments-by-provider")
	g.Post("/group-invoices", RequireCompanyAccess(CompanyFromBody(), access), h.GroupInvoices)
	g.Post("/generate-individual-references", RequireCompanyAccess(CompanyFromBody(), access), h.GenerateIndividualReferences)
	g.Get("/", RequireCompanyAccess(CompanyFromQuery("companyId"), access), h.List)
	g.Get("/bank-layouts", RequireCompanyAccess(CompanyFromQuery("companyId"), access), h.ListLayouts)
	g.Get("/bank-layouts/:id", h.GetLayout)
	g.Get("/bank-layouts/:id/pdf", h.LayoutPDF)
}

// RegisterVisibilityRoutes monta /role-visibility. Solo admin modifica.
func RegisterVisibilityRoutes(r fiber.Router, h *VisibilityHandler) {
	g := r.Group("/role-visibility")
	g.Get("/cascade/companies", h.CascadeCompanies)
	g.Get("/cascade/brands", h.CascadeBrands)
	g.Get("/cascade/branches", h.CascadeBranches)
	g.Get("/:userId", h.Get)
	g.Put("/:userId", RequireRole(RoleAdmin), h.Update)
	g.Get("/:userId/structure", h.Structure)
	g.Get("/:userId/selects", h.Selects)
	g.Get("/:userId/check-access", h.CheckAccess)
}
