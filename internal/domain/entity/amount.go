package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount importe monetario de los documentos embebidos (facturas y pagos en efectivo).
// Se normaliza una sola vez al decodificar: acepta número plano, {"$numberDecimal": "10.50"}
// o cadena numérica. Se serializa siempre como número JSON.
type Amount struct {
	decimal.Decimal
}

// NewAmount envuelve un decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString construye un Amount desde texto; cadena inválida o vacía = 0.
func AmountFromString(s string) Amount {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

type numberDecimal struct {
	Value *string `json:"$numberDecimal"`
}

// UnmarshalJSON implementa json.Unmarshaler con las tres representaciones aceptadas.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = AmountFromString(s)
		return nil
	case '{':
		var nd numberDecimal
		if err := json.Unmarshal(data, &nd); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		if nd.Value == nil {
			*a = Amount{}
			return nil
		}
		*a = AmountFromString(*nd.Value)
		return nil
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("amount: número inválido %s: %w", data, err)
		}
		*a = Amount{Decimal: d}
		return nil
	}
}

// MarshalJSON escribe el importe como número sin comillas.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
