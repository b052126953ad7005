package http

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

// companyAccessChecker contrato mínimo para verificar visibilidad sobre una empresa.
// Lo implementa *rolevisibility.UseCase.
type companyAccessChecker interface {
	HasAccessToCompany(ctx context.Context, userID, companyID string) (bool, error)
}

// companyScopeResolver además resuelve las reglas completas del usuario, para acotar
// listados y recursos a los que se llega sin companyId.
type companyScopeResolver interface {
	companyAccessChecker
	Rules(ctx context.Context, userID string) (visibility.Rules, error)
}

// visibleCompanies ids de empresa visibles para el usuario del token; nil = acceso total.
func visibleCompanies(c *fiber.Ctx, scope companyScopeResolver) ([]string, error) {
	rules, err := scope.Rules(c.UserContext(), GetUserID(c))
	if err != nil {
		return nil, err
	}
	if rules.HasFullAccess() {
		return nil, nil
	}
	return rules.Companies.IDs(), nil
}

// CompanyIDSource extrae el companyId de la petición ("" = nada que comprobar).
type CompanyIDSource func(c *fiber.Ctx) string

// CompanyFromQuery lee el companyId del query string.
func CompanyFromQuery(name string) CompanyIDSource {
	return func(c *fiber.Ctx) string { return c.Query(name) }
}

// CompanyFromBody lee companyId del cuerpo JSON sin consumirlo.
func CompanyFromBody() CompanyIDSource {
	return func(c *fiber.Ctx) string {
		var body struct {
			CompanyID string `json:"companyId"`
		}
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return ""
		}
		return body.CompanyID
	}
}

// RequireCompanyAccess rechaza con 403 las peticiones sobre empresas fuera de la
// visibilidad del usuario del token. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - sin companyId en la petición → pasa (el caso de uso valida lo obligatorio).
//   - usuario inexistente → 404; fallo de infraestructura → 500.
func RequireCompanyAccess(from CompanyIDSource, checker companyAccessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := from(c)
		if companyID == "" {
			return c.Next()
		}
		ok, err := checker.HasAccessToCompany(c.UserContext(), GetUserID(c), companyID)
		if err != nil {
			return fail(c, err)
		}
		if !ok {
			return abort(c, fiber.StatusForbidden, "COMPANY_FORBIDDEN", "la empresa no está dentro de la visibilidad del usuario")
		}
		return c.Next()
	}
}
