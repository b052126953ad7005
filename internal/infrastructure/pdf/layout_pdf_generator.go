// Package pdf genera el resumen imprimible de un layout bancario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Folio del layout + tipo │ Fecha + estatus          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: empresa / cuenta de cargo / paquetes                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: pagos agrupados o facturas individuales              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: registros / importe total                          │
//	│  QR con folio e importe                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/providerpayments"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ providerpayments.LayoutPDFGenerator = (*LayoutPDFGenerator)(nil)

// LayoutPDFGenerator implementa providerpayments.LayoutPDFGenerator usando Maroto v2.
type LayoutPDFGenerator struct{}

func NewLayoutPDFGenerator() *LayoutPDFGenerator { return &LayoutPDFGenerator{} }

// Generate arma el PDF del layout. payments solo se usa en layouts agrupados.
func (g *LayoutPDFGenerator) Generate(layout *entity.BankLayout, payments []*entity.PaymentsByProvider) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Layout bancario "+layout.LayoutFolio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(layout))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(layout))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if layout.TipoLayout == entity.LayoutIndividual {
		m.AddRows(invoiceHeaderRow())
		m.AddRows(invoiceRows(layout.FacturasIndividuales)...)
	} else {
		m.AddRows(paymentHeaderRow())
		m.AddRows(paymentRows(payments)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(layout))
	m.AddRows(row.New(4))
	m.AddRows(qrRow(layout))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(layout *entity.BankLayout) core.Row {
	title := "LAYOUT DE PAGOS AGRUPADOS"
	if layout.TipoLayout == entity.LayoutIndividual {
		title = "LAYOUT DE REFERENCIAS INDIVIDUALES"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Folio: "+layout.LayoutFolio, props.Text{
				Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+layout.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Estatus: "+strings.ToUpper(layout.Estatus), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 9,
			}),
		),
	)
}

func detailsRow(layout *entity.BankLayout) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Empresa: %s   |   Cuenta de cargo: %s",
				nonEmpty(layout.CompanyID, "—"),
				nonEmpty(layout.BankAccountID, "—"),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("Paquetes incluidos: %d", len(layout.PackageIDs)),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
}

func paymentHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Folio", 1, align.Left),
		headerCell("RFC", 2, align.Left),
		headerCell("Proveedor", 3, align.Left),
		headerCell("Clave", 1, align.Center),
		headerCell("Referencia", 3, align.Left),
		headerCell("Importe", 2, align.Right),
	)
}

func paymentRows(list []*entity.PaymentsByProvider) []core.Row {
	rows := make([]core.Row, 0, len(list))
	for _, p := range list {
		rows = append(rows, row.New(7).Add(
			cell(p.GroupingFolio, 1, align.Left),
			cell(p.ProviderRFC, 2, align.Left),
			cell(p.ProviderName, 3, align.Left),
			cell(nonEmpty(p.BankNumber, "—"), 1, align.Center),
			cell(p.Referencia, 3, align.Left),
			cell(formatMoney(p.TotalAmount), 2, align.Right),
		))
	}
	return rows
}

func invoiceHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Paquete", 1, align.Left),
		headerCell("Folio", 1, align.Left),
		headerCell("RFC", 2, align.Left),
		headerCell("Emisor", 3, align.Left),
		headerCell("Referencia", 3, align.Left),
		headerCell("Importe", 2, align.Right),
	)
}

func invoiceRows(list []entity.LayoutInvoice) []core.Row {
	rows := make([]core.Row, 0, len(list))
	for _, inv := range list {
		rows = append(rows, row.New(7).Add(
			cell(inv.PackageFolio, 1, align.Left),
			cell(nonEmpty(inv.Folio, "—"), 1, align.Left),
			cell(inv.RFCEmisor, 2, align.Left),
			cell(inv.NombreEmisor, 3, align.Left),
			cell(inv.Referencia, 3, align.Left),
			cell(formatMoney(inv.Importe), 2, align.Right),
		))
	}
	return rows
}

func totalsRow(layout *entity.BankLayout) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Registros:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", layout.TotalRegistros), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(formatMoney(layout.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

func qrRow(layout *entity.BankLayout) core.Row {
	payload := fmt.Sprintf("%s|%s|%s", layout.LayoutFolio, layout.TipoLayout, layout.TotalAmount.StringFixed(2))
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(payload, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Documento de control interno. Las referencias deben capturarse tal cual en la banca electrónica.",
				props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato MXN con separador de miles y dos decimales.
// Ej: 1234567.5 → "$1,234,567.50", -20 → "-$20.00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + frac
}
