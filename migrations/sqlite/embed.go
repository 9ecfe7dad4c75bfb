// Package migrations embeds the SQLite schema migrations.
package migrations

import "embed"

// FS contains the SQLite migrations.
//
//go:embed sql/*.sql
var FS embed.FS

// Dir is the directory within FS where migrations live.
const Dir = "sql"
