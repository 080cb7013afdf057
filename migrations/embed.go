// Package migrations contiene el esquema SQL embebido en el binario.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
