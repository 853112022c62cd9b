// Package migrations embeds the goose SQL migration files so the server can
// migrate its schema at startup without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
