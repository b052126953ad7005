package main

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/backoffice-api/pkg/textnorm"
)

// Formato esperado:
//
//	<catalogo>
//	  <banco clave="002" nombre="BANAMEX">
//	    <ruteo abono="BBVA MEXICO" clave="04012"/>
//	  </banco>
//	</catalogo>
type catalog struct {
	Banks []xmlBank `xml:"banco"`
}

type xmlBank struct {
	Code   string     `xml:"clave,attr"`
	Name   string     `xml:"nombre,attr"`
	Routes []xmlRoute `xml:"ruteo"`
}

type xmlRoute struct {
	Credited string `xml:"abono,attr"`
	Number   string `xml:"clave,attr"`
}

type seedBank struct {
	ID, Name, Key, Code string
}

type seedRoute struct {
	ID, DebitedKey, Credited, Number string
}

// namespace fijo: los ids son deterministas y el script se puede reejecutar.
var seedNamespace = uuid.MustParse("6f1c3c5e-2a8d-4b7e-9c41-0d5b8e2f7a10")

func decodeCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalize recorta nombres, descarta duplicados por clave plegada y claves de ruteo
// que no sean de 5 dígitos. Salida ordenada para que el script sea estable.
func normalize(c *catalog) ([]seedBank, []seedRoute) {
	banks := map[string]seedBank{}
	routes := map[string]seedRoute{}
	for _, b := range c.Banks {
		name := textnorm.TrimName(b.Name)
		if name == "" {
			continue
		}
		key := textnorm.FoldName(name)
		if _, ok := banks[key]; !ok {
			banks[key] = seedBank{
				ID:   uuid.NewSHA1(seedNamespace, []byte("bank:"+key)).String(),
				Name: name,
				Key:  key,
				Code: strings.TrimSpace(b.Code),
			}
		}
		for _, r := range b.Routes {
			credited := textnorm.TrimName(r.Credited)
			number := strings.TrimSpace(r.Number)
			if credited == "" || !isFiveDigits(number) {
				continue
			}
			rk := key + "|" + strings.ToLower(credited)
			if _, ok := routes[rk]; ok {
				continue
			}
			routes[rk] = seedRoute{
				ID:         uuid.NewSHA1(seedNamespace, []byte("route:"+rk)).String(),
				DebitedKey: key,
				Credited:   credited,
				Number:     number,
			}
		}
	}

	outBanks := make([]seedBank, 0, len(banks))
	for _, b := range banks {
		outBanks = append(outBanks, b)
	}
	sort.Slice(outBanks, func(i, j int) bool { return outBanks[i].Key < outBanks[j].Key })

	outRoutes := make([]seedRoute, 0, len(routes))
	for _, r := range routes {
		outRoutes = append(outRoutes, r)
	}
	sort.Slice(outRoutes, func(i, j int) bool {
		if outRoutes[i].DebitedKey != outRoutes[j].DebitedKey {
			return outRoutes[i].DebitedKey < outRoutes[j].DebitedKey
		}
		return strings.ToLower(outRoutes[i].Credited) < strings.ToLower(outRoutes[j].Credited)
	})
	return outBanks, outRoutes
}

func isFiveDigits(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func writeSQL(w io.Writer, banks []seedBank, routes []seedRoute) error {
	out := bufio.NewWriter(w)

	out.WriteString("-- Catálogo de bancos y claves de ruteo\n")
	out.WriteString("-- Generado por cmd/seed_banks\n\n")

	if len(banks) > 0 {
		out.WriteString("-- 1. Bancos\n")
		out.WriteString("INSERT INTO banks (id, name, name_key, code) VALUES\n")
		for i, b := range banks {
			sep := ","
			if i == len(banks)-1 {
				sep = ""
			}
			fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s')%s\n", b.ID, escapeSQL(b.Name), escapeSQL(b.Key), escapeSQL(b.Code), sep)
		}
		out.WriteString("ON CONFLICT (name_key) DO UPDATE SET name = EXCLUDED.name, code = EXCLUDED.code, updated_at = now();\n\n")
	}

	if len(routes) > 0 {
		out.WriteString("-- 2. Claves de ruteo (banco de cargo por name_key)\n")
		for _, r := range routes {
			fmt.Fprintf(out, "INSERT INTO bank_numbers (id, bank_debited, bank_credited, bank_number)\n")
			fmt.Fprintf(out, "SELECT '%s', id, '%s', '%s' FROM banks WHERE name_key = '%s'\n",
				r.ID, escapeSQL(r.Credited), r.Number, escapeSQL(r.DebitedKey))
			out.WriteString("ON CONFLICT (bank_debited, lower(bank_credited)) DO UPDATE SET bank_number = EXCLUDED.bank_number;\n")
		}
	}
	return out.Flush()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
