// Package sat validaciones de identificadores fiscales del SAT.
package sat

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// persona moral: 3 letras; persona física: 4 letras. Luego fecha AAMMDD y homoclave de 3.
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}(\d{6})[A-Z0-9]{3}$`)

// NormalizeRFC mayúsculas y sin espacios al borde.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.TrimSpace(rfc))
}

// ValidateRFC valida formato y fecha de constitución/nacimiento del RFC normalizado.
func ValidateRFC(rfc string) error {
	rfc = NormalizeRFC(rfc)
	m := rfcPattern.FindStringSubmatch(rfc)
	if m == nil {
		return fmt.Errorf("sat: RFC %q con formato inválido", rfc)
	}
	if _, err := time.Parse("060102", m[1]); err != nil {
		return fmt.Errorf("sat: fecha del RFC %q inválida", rfc)
	}
	return nil
}
