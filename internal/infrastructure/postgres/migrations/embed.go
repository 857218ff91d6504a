// Package migrations expone el esquema SQL embebido en el binario.
package migrations

import "embed"

// FS contiene los pares NNN_nombre.up.sql / NNN_nombre.down.sql que consume golang-migrate.
//
//go:embed *.sql
var FS embed.FS
