// Package payments contiene las reglas puras de agrupación de facturas por emisor.
package payments

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Valores fijos de los grupos de pago en efectivo y del ruteo bancario.
const (
	CashGroupPrefix   = "EFECTIVO_"
	CashNoConcept     = "SIN_CONCEPTO"
	CashProviderName  = "Pago en Efectivo"
	DefaultBankNumber = "00000"
)

// Group acumulado de un emisor (RFC) o de un concepto de efectivo.
type Group struct {
	Key           string // RFC normalizado o EFECTIVO_<concepto>
	RFC           string
	IssuerName    string // primer nombreEmisor no vacío visto
	TotalAmount   decimal.Decimal
	InvoiceIDs    []string
	IsCashPayment bool
}

// NormalizeRFC mayúsculas y sin espacios al borde.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// InvoiceAmount importe efectivo: importePagado si es > 0, si no importeAPagar.
func InvoiceAmount(inv entity.EmbeddedInvoice) decimal.Decimal {
	if inv.ImportePagado.IsPositive() {
		return inv.ImportePagado.Decimal
	}
	return inv.ImporteAPagar.Decimal
}

// CashAmount mismo criterio para pagos en efectivo.
func CashAmount(p entity.CashPayment) decimal.Decimal {
	if p.ImportePagado.IsPositive() {
		return p.ImportePagado.Decimal
	}
	return p.ImporteAPagar.Decimal
}

// QualifiesForGrouping RFC informado y al menos una señal de pago.
func QualifiesForGrouping(inv entity.EmbeddedInvoice) bool {
	if NormalizeRFC(inv.RFCEmisor) == "" {
		return false
	}
	return inv.ImportePagado.IsPositive() ||
		inv.ImporteAPagar.IsPositive() ||
		inv.Autorizada ||
		inv.EstadoPago == entity.EstadoPagoPagada
}

// QualifiesForReference factura con importe y RFC informado (modo individual).
func QualifiesForReference(inv entity.EmbeddedInvoice) bool {
	if NormalizeRFC(inv.RFCEmisor) == "" {
		return false
	}
	return inv.ImporteAPagar.IsPositive() || inv.ImportePagado.IsPositive()
}

// CashGroupKey clave del grupo de efectivo según el concepto de gasto.
func CashGroupKey(p entity.CashPayment) string {
	if p.ExpenseConcept != nil {
		if name := strings.TrimSpace(p.ExpenseConcept.Name); name != "" {
			return CashGroupPrefix + name
		}
	}
	return CashGroupPrefix + CashNoConcept
}

// GroupByIssuer agrupa las facturas de todos los paquetes por RFC y los pagos
// en efectivo por concepto. Los grupos salen en orden de primera aparición.
func GroupByIssuer(packages []*entity.InvoicesPackage) []*Group {
	var order []*Group
	index := map[string]*Group{}

	get := func(key string, cash bool) *Group {
		g, ok := index[key]
		if !ok {
			g = &Group{Key: key, IsCashPayment: cash}
			if !cash {
				g.RFC = key
			}
			index[key] = g
			order = append(order, g)
		}
		return g
	}

	for _, pkg := range packages {
		for _, inv := range pkg.Facturas {
			if !QualifiesForGrouping(inv) {
				continue
			}
			g := get(NormalizeRFC(inv.RFCEmisor), false)
			g.TotalAmount = g.TotalAmount.Add(InvoiceAmount(inv))
			g.InvoiceIDs = append(g.InvoiceIDs, inv.ID)
			if g.IssuerName == "" {
				g.IssuerName = strings.TrimSpace(inv.NombreEmisor)
			}
		}
		for _, p := range pkg.PagosEfectivo {
			amount := CashAmount(p)
			if !amount.IsPositive() {
				continue
			}
			g := get(CashGroupKey(p), true)
			g.TotalAmount = g.TotalAmount.Add(amount)
			g.InvoiceIDs = append(g.InvoiceIDs, p.ID)
		}
	}
	return order
}

// Total suma de los importes de los grupos.
func Total(groups []*Group) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.TotalAmount)
	}
	return total
}
