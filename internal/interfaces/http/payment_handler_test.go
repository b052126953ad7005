package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

const (
	pkgID     = "11111111-1111-1111-1111-111111111111"
	accountID = "22222222-2222-2222-2222-222222222222"
)

type stubPayments struct {
	groupIn   *dto.GroupInvoicesRequest
	indivIn   *dto.IndividualReferencesRequest
	layoutIn  *dto.BankLayoutListRequest
	paymentIn *dto.PaymentListRequest
	// layoutCompany empresa de los layouts devueltos; "" = testCompanyID.
	layoutCompany string
	rendered      bool
	err           error
}

func (s *stubPayments) GroupInvoicesByProvider(_ context.Context, in dto.GroupInvoicesRequest) (*dto.GroupInvoicesResponse, error) {
	s.groupIn = &in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GroupInvoicesResponse{
		Payments: []dto.PaymentResponse{{GroupingFolio: "00001", Referencia: "0703250000000001"}},
		Summary:  dto.GroupingSummary{GroupsFound: 1, PaymentsCreated: 1, TotalAmount: entity.NewAmount(decimal.NewFromInt(250)), SkippedRFCs: []string{}},
	}, nil
}

func (s *stubPayments) GenerateIndividualReferences(_ context.Context, in dto.IndividualReferencesRequest) (*dto.IndividualReferencesResponse, error) {
	s.indivIn = &in
	if s.err != nil {
		return nil, s.err
	}
	return &dto.IndividualReferencesResponse{Summary: dto.IndividualReferencesSummary{PackagesProcessed: 1}}, nil
}

func (s *stubPayments) ListPayments(_ context.Context, in dto.PaymentListRequest) (*dto.ListResult[dto.PaymentResponse], error) {
	s.paymentIn = &in
	return &dto.ListResult[dto.PaymentResponse]{}, s.err
}

func (s *stubPayments) ListBankLayouts(_ context.Context, in dto.BankLayoutListRequest) (*dto.ListResult[dto.BankLayoutResponse], error) {
	s.layoutIn = &in
	if s.err != nil {
		return nil, s.err
	}
	p := in.PageRequest
	p.Normalize()
	return &dto.ListResult[dto.BankLayoutResponse]{
		Items:      []dto.BankLayoutResponse{{LayoutFolio: "LYT_0703251405001", AgrupacionesCount: 2}},
		Pagination: dto.NewPagination(p, 41),
	}, nil
}

func (s *stubPayments) GetBankLayout(_ context.Context, id string) (*dto.BankLayoutResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	company := s.layoutCompany
	if company == "" {
		company = testCompanyID
	}
	return &dto.BankLayoutResponse{ID: id, CompanyID: company}, nil
}

func (s *stubPayments) RenderBankLayoutPDF(context.Context, string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	s.rendered = true
	return []byte("%PDF-1.3 fake"), "LYT_0703251405001.pdf", nil
}

// allowOnly permite únicamente la empresa indicada.
type allowOnly string

func (a allowOnly) HasAccessToCompany(_ context.Context, _ string, companyID string) (bool, error) {
	return companyID == string(a), nil
}

func (a allowOnly) Rules(context.Context, string) (visibility.Rules, error) {
	return visibility.Rules{Companies: visibility.RestrictedTo(string(a)), Source: visibility.SourceUser}, nil
}

// fullAccess usuario sin registro de visibilidad.
type fullAccess struct{}

func (fullAccess) HasAccessToCompany(context.Context, string, string) (bool, error) { return true, nil }

func (fullAccess) Rules(context.Context, string) (visibility.Rules, error) {
	return visibility.FullAccess(), nil
}

type accessScope interface {
	HasAccessToCompany(ctx context.Context, userID, companyID string) (bool, error)
	Rules(ctx context.Context, userID string) (visibility.Rules, error)
}

func paymentsApp(svc *stubPayments) *fiber.App {
	return paymentsAppWith(svc, allowOnly(testCompanyID))
}

func paymentsAppWith(svc *stubPayments, access accessScope) *fiber.App {
	return newAPI(func(api fiber.Router) {
		apphttp.RegisterPaymentRoutes(api, apphttp.NewPaymentHandler(svc, access), access)
	})
}

func groupBody(companyID string) string {
	return fmt.Sprintf(`{"packageIds":[%q],"bankAccountId":%q,"companyId":%q}`, pkgID, accountID, companyID)
}

func TestGroupInvoices_Created(t *testing.T) {
	svc := &stubPayments{}
	resp := call(t, paymentsApp(svc), http.MethodPost, "/api/payments-by-provider/group-invoices", groupBody(testCompanyID), "")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := readEnvelope(t, resp)
	assert.True(t, env.Success)

	var out dto.GroupInvoicesResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "00001", out.Payments[0].GroupingFolio)
	assert.Nil(t, out.Layout)
	assert.True(t, out.Summary.TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Contains(t, string(env.Data), `"totalAmount":250`, "los importes viajan como número JSON")

	require.NotNil(t, svc.groupIn)
	assert.Equal(t, []string{pkgID}, svc.groupIn.PackageIDs)
	assert.Equal(t, accountID, svc.groupIn.BankAccountID)
}

func TestGroupInvoices_ValidacionFallida_400(t *testing.T) {
	svc := &stubPayments{}
	body := fmt.Sprintf(`{"packageIds":[],"bankAccountId":%q,"companyId":%q}`, accountID, testCompanyID)
	resp := call(t, paymentsApp(svc), http.MethodPost, "/api/payments-by-provider/group-invoices", body, "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := readEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "PackageIDs")
	assert.Nil(t, svc.groupIn, "no debe llegar al caso de uso")
}

func TestGroupInvoices_EmpresaFueraDeVisibilidad_403(t *testing.T) {
	svc := &stubPayments{}
	other := "99999999-9999-9999-9999-999999999999"
	resp := call(t, paymentsApp(svc), http.MethodPost, "/api/payments-by-provider/group-invoices", groupBody(other), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, svc.groupIn)
}

func TestGroupInvoices_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("cuenta: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: paquete sin facturas", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("referencia: %w", domain.ErrDuplicate), http.StatusBadRequest},
		{errors.New("conexión perdida"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &stubPayments{err: tc.err}
		resp := call(t, paymentsApp(svc), http.MethodPost, "/api/payments-by-provider/group-invoices", groupBody(testCompanyID), "")

		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		env := readEnvelope(t, resp)
		assert.False(t, env.Success)
		assert.Equal(t, tc.err.Error(), env.Error)
	}
}

func TestGenerateIndividualReferences_SinEmpresa(t *testing.T) {
	svc := &stubPayments{}
	body := fmt.Sprintf(`{"packageIds":[%q]}`, pkgID)
	resp := call(t, paymentsApp(svc), http.MethodPost, "/api/payments-by-provider/generate-individual-references", body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, svc.indivIn)
	assert.Empty(t, svc.indivIn.CompanyID)
}

func TestListLayouts_PaginacionEnSobre(t *testing.T) {
	svc := &stubPayments{}
	resp := call(t, paymentsApp(svc), http.MethodGet,
		"/api/payments-by-provider/bank-layouts?page=2&limit=20&tipoLayout=grouped&companyId="+testCompanyID, "", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := readEnvelope(t, resp)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, *env.Pagination)

	require.NotNil(t, svc.layoutIn)
	assert.Equal(t, "grouped", svc.layoutIn.TipoLayout)
	assert.Equal(t, 2, svc.layoutIn.Page)
}

func TestListLayouts_TipoInvalido_400(t *testing.T) {
	svc := &stubPayments{}
	resp := call(t, paymentsApp(svc), http.MethodGet, "/api/payments-by-provider/bank-layouts?tipoLayout=otro", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, svc.layoutIn)
}

func TestGetLayout_NoExiste_404(t *testing.T) {
	svc := &stubPayments{err: domain.ErrNotFound}
	resp := call(t, paymentsApp(svc), http.MethodGet, "/api/payments-by-provider/bank-layouts/"+pkgID, "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLayoutPDF_Descarga(t *testing.T) {
	resp := call(t, paymentsApp(&stubPayments{}), http.MethodGet, "/api/payments-by-provider/bank-layouts/"+pkgID+"/pdf", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "LYT_0703251405001.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.3 fake", string(body))
}

func TestPaymentRoutes_SinToken_401(t *testing.T) {
	app := paymentsApp(&stubPayments{})
	resp := call(t, app, http.MethodGet, "/api/payments-by-provider", "", "Bearer x")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListados_SinEmpresa_AcotadosALaVisibilidad(t *testing.T) {
	svc := &stubPayments{}
	app := paymentsApp(svc)

	resp := call(t, app, http.MethodGet, "/api/payments-by-provider", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.paymentIn)
	assert.Equal(t, []string{testCompanyID}, svc.paymentIn.VisibleCompanies)

	resp = call(t, app, http.MethodGet, "/api/payments-by-provider/bank-layouts", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.layoutIn)
	assert.Equal(t, []string{testCompanyID}, svc.layoutIn.VisibleCompanies)
}

func TestListados_AccesoTotal_SinAcotar(t *testing.T) {
	svc := &stubPayments{}
	resp := call(t, paymentsAppWith(svc, fullAccess{}), http.MethodGet, "/api/payments-by-provider/bank-layouts", "", "")
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.layoutIn)
	assert.Nil(t, svc.layoutIn.VisibleCompanies)
}

func TestLayout_DeOtraEmpresa_403(t *testing.T) {
	other := "99999999-9999-9999-9999-999999999999"
	svc := &stubPayments{layoutCompany: other}
	app := paymentsApp(svc)

	resp := call(t, app, http.MethodGet, "/api/payments-by-provider/bank-layouts/"+pkgID, "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	env := readEnvelope(t, resp)
	assert.Equal(t, "COMPANY_FORBIDDEN", env.Message)

	resp = call(t, app, http.MethodGet, "/api/payments-by-provider/bank-layouts/"+pkgID+"/pdf", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, svc.rendered, "no se genera el PDF de un layout ajeno")

	resp = call(t, paymentsAppWith(svc, fullAccess{}), http.MethodGet, "/api/payments-by-provider/bank-layouts/"+pkgID+"/pdf", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.rendered)
}
