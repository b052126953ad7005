package payments

import (
	"fmt"
	"time"
)

// Secuencias de PostgreSQL que alimentan los códigos.
const (
	SeqReferencia    = "payment_referencia_seq"
	SeqGroupingFolio = "payment_grouping_folio_seq"
	SeqLayoutFolio   = "bank_layout_folio_seq"
)

const (
	referenciaModulo    = 10_000_000_000
	groupingFolioModulo = 100_000
)

// FormatReferencia DDMMYY + secuencia a 10 dígitos: 16 caracteres numéricos.
func FormatReferencia(t time.Time, seq int64) string {
	return t.Format("020106") + fmt.Sprintf("%010d", seq%referenciaModulo)
}

// FormatGroupingFolio secuencia a 5 dígitos exactos; la secuencia cicla en 99999.
func FormatGroupingFolio(seq int64) string {
	return fmt.Sprintf("%05d", seq%groupingFolioModulo)
}

// FormatLayoutFolio LYT_ + DDMMYYHHMM + secuencia a 3 dígitos como mínimo.
func FormatLayoutFolio(t time.Time, seq int64) string {
	return "LYT_" + t.Format("0201061504") + fmt.Sprintf("%03d", seq)
}
