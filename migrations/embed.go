// Package migrations embeds the goose SQL migrations that define the tenant
// schema, the privileged function boundary and the row policy layer.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
