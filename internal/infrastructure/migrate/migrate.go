// Package migrate lee migraciones SQL embebidas: archivos *.sql ordenados por nombre,
// con secciones opcionales "-- +migrate Up" / "-- +migrate Down".
package migrate

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Table es la tabla donde cada backend registra las migraciones aplicadas.
const Table = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// File es una migración lista para ejecutar.
type File struct {
	Name string
	Up   string
}

// Files lista las migraciones *.sql de la raíz de fsys en orden lexicográfico.
// Archivos cuya sección Up queda vacía se omiten.
func Files(fsys fs.FS) ([]File, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]File, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		up := ExtractUp(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}
		files = append(files, File{Name: name, Up: up})
	}
	return files, nil
}

// ExtractUp devuelve el SQL de la sección Up; sin marcadores devuelve el contenido completo.
func ExtractUp(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// IsAlreadyExists indica si el error corresponde a DDL idempotente ya aplicado.
func IsAlreadyExists(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}
