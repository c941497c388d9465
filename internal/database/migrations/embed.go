// Package migrations содержит SQL-миграции Identity Store, встроенные в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
