package payments

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func amt(s string) entity.Amount {
	return entity.NewAmount(decimal.RequireFromString(s))
}

func TestInvoiceAmount_NormalizaRepresentaciones(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"importePagado":10}`, "10"},
		{`{"importePagado":{"$numberDecimal":"10.50"}}`, "10.5"},
		{`{"importePagado":"7.25"}`, "7.25"},
		{`{"importePagado":0,"importeAPagar":5}`, "5"},
	}
	for _, tc := range cases {
		var inv entity.EmbeddedInvoice
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &inv))
		assert.True(t, InvoiceAmount(inv).Equal(decimal.RequireFromString(tc.want)), tc.raw)
	}
}

func TestQualifiesForGrouping(t *testing.T) {
	assert.False(t, QualifiesForGrouping(entity.EmbeddedInvoice{ImportePagado: amt("10")}), "sin RFC")
	assert.False(t, QualifiesForGrouping(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX"}), "sin señal de pago")
	assert.True(t, QualifiesForGrouping(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX", ImporteAPagar: amt("1")}))
	assert.True(t, QualifiesForGrouping(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX", Autorizada: true}))
	assert.True(t, QualifiesForGrouping(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX", EstadoPago: entity.EstadoPagoPagada}))
}

func TestQualifiesForReference(t *testing.T) {
	assert.False(t, QualifiesForReference(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX", Autorizada: true}))
	assert.True(t, QualifiesForReference(entity.EmbeddedInvoice{RFCEmisor: "ABC010101XXX", ImportePagado: amt("3")}))
	assert.False(t, QualifiesForReference(entity.EmbeddedInvoice{RFCEmisor: "  ", ImportePagado: amt("3")}))
}

func TestGroupByIssuer_SumaPorRFCNormalizado(t *testing.T) {
	pkgs := []*entity.InvoicesPackage{
		{ID: "p1", Facturas: []entity.EmbeddedInvoice{
			{ID: "i1", RFCEmisor: "abc010101xxx ", NombreEmisor: "Proveedor X", ImportePagado: amt("100")},
		}},
		{ID: "p2", Facturas: []entity.EmbeddedInvoice{
			{ID: "i2", RFCEmisor: "ABC010101XXX", ImporteAPagar: amt("150")},
			{ID: "i3", RFCEmisor: "ZZZ010101AAA", ImporteAPagar: amt("1")},
		}},
	}

	groups := GroupByIssuer(pkgs)

	require.Len(t, groups, 2)
	assert.Equal(t, "ABC010101XXX", groups[0].RFC)
	assert.True(t, groups[0].TotalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, []string{"i1", "i2"}, groups[0].InvoiceIDs)
	assert.Equal(t, "Proveedor X", groups[0].IssuerName)
	assert.Equal(t, "ZZZ010101AAA", groups[1].Key)
	assert.True(t, Total(groups).Equal(decimal.NewFromInt(251)))
}

func TestGroupByIssuer_EfectivoPorConcepto(t *testing.T) {
	pkgs := []*entity.InvoicesPackage{{
		ID: "p1",
		PagosEfectivo: []entity.CashPayment{
			{ID: "c1", ImportePagado: amt("200")},
			{ID: "c2", ImporteAPagar: amt("50"), ExpenseConcept: &entity.ExpenseConcept{Name: " Viáticos "}},
			{ID: "c3", ImportePagado: amt("0")},
		},
	}}

	groups := GroupByIssuer(pkgs)

	require.Len(t, groups, 2)
	assert.Equal(t, "EFECTIVO_SIN_CONCEPTO", groups[0].Key)
	assert.True(t, groups[0].IsCashPayment)
	assert.Empty(t, groups[0].RFC)
	assert.True(t, groups[0].TotalAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "EFECTIVO_Viáticos", groups[1].Key)
}

func TestGroupByIssuer_SinPaquetes(t *testing.T) {
	assert.Empty(t, GroupByIssuer(nil))
	assert.True(t, Total(nil).IsZero())
}
