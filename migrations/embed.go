// Package migrations embeds the SQL schema migrations applied at startup.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files in this directory.
//
//go:embed *.sql
var FS embed.FS
