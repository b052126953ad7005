package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON_Representaciones(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"numero plano", `10`, "10"},
		{"numberDecimal", `{"$numberDecimal":"10.50"}`, "10.5"},
		{"cadena numerica", `"7.25"`, "7.25"},
		{"cadena con espacios", `" 3.10 "`, "3.1"},
		{"cadena invalida", `"abc"`, "0"},
		{"null", `null`, "0"},
		{"objeto sin campo", `{}`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &a))
			assert.True(t, a.Equal(decimal.RequireFromString(tc.want)), "got %s", a.String())
		})
	}
}

func TestAmount_UnmarshalJSON_NumeroMalformado(t *testing.T) {
	var a Amount
	assert.Error(t, a.UnmarshalJSON([]byte(`1.2.3`)))
}

func TestAmount_MarshalJSON_SinComillas(t *testing.T) {
	b, err := json.Marshal(struct {
		Importe Amount `json:"importe"`
	}{Importe: NewAmount(decimal.RequireFromString("10.50"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"importe":10.5}`, string(b))
}

func TestEmbeddedInvoice_DecodificaCamposDeMongo(t *testing.T) {
	raw := `{"_id":"inv-1","uuid":"U-1","folio":"A1","rfcEmisor":" abc010101xxx ",
		"importePagado":{"$numberDecimal":"0"},"importeAPagar":"5","autorizada":true,"estadoPago":2}`
	var inv EmbeddedInvoice
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))

	assert.Equal(t, "inv-1", inv.ID)
	assert.True(t, inv.ImporteAPagar.Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.ImportePagado.IsZero())
	assert.True(t, inv.Autorizada)
	assert.Equal(t, EstadoPagoPagada, inv.EstadoPago)
}
