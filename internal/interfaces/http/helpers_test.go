package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testRoleID    = "00000000-0000-0000-0000-0000000000aa"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "backoffice-api-test"
	testExpMin    = 60
)

// newAPI app Fiber con /api protegido por JWT; register monta las rutas bajo test.
func newAPI(register func(api fiber.Router)) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	register(api)
	return app
}

// bearer genera "Bearer <jwt>" para el rol indicado.
func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, RoleID: testRoleID, Role: role}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call ejecuta la petición con token de admin salvo que auth sea distinto de "".
func call(t *testing.T, app *fiber.App, method, target, body, auth string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth == "" {
		auth = bearer(t, apphttp.RoleAdmin)
	}
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *dto.Pagination `json:"pagination"`
}

func readEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
