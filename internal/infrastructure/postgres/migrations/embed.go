package migrations

import "embed"

// FS contiene las migraciones PostgreSQL embebidas.
//
//go:embed *.sql
var FS embed.FS
