// Package textnorm normaliza nombres para comparaciones sin distinguir mayúsculas ni acentos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TrimName quita espacios al borde y colapsa los internos a uno solo.
func TrimName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldName clave de comparación: "  Banco  Azteca " y "banco azteca" y "BANCO AZTÉCA" producen la misma clave.
func FoldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, TrimName(s))
	if err != nil {
		out = TrimName(s)
	}
	return cases.Fold().String(out)
}
