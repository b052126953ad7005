// seed_banks genera el script SQL que puebla banks y bank_numbers a partir de un
// catálogo XML de bancos (se acepta ISO-8859-1, como lo publican SAT y Banxico).
//
// Uso: go run ./cmd/seed_banks [ruta/Bancos.xml] [salida.sql]
// Por defecto lee Bancos.xml del directorio actual.
// Escribe: migrations/002_seed_banks.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	xmlPath := "Bancos.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := decodeCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}
	banks, routes := normalize(cat)

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_banks.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, banks, routes); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d bancos, %d claves de ruteo\n", outPath, len(banks), len(routes))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
