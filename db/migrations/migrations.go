// Package migrations embeds the SQL migration files in this directory so
// the golang-migrate iofs driver can apply them at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

const Version = 1
