// Package migrations embeds the schema migrations so binaries and tests do not depend on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
