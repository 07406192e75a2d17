package migrations

import "embed"

// FS contiene las migraciones SQLite embebidas.
//
//go:embed *.sql
var FS embed.FS
