// Package migrations embeds the SQL schema migrations.
package migrations

import "embed"

// FS holds the versioned migration files applied by goose.
//
//go:embed *.sql
var FS embed.FS
