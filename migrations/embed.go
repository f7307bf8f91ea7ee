// Package migrations holds the catalog schema as golang-migrate SQL files.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql migration.
//
//go:embed *.sql
var FS embed.FS
