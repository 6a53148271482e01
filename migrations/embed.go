// Package migrations holds the SQL scripts that build the entry store schema.
// Scripts are named NNNN_description.sql and run once each, in number order.
package migrations

import "embed"

//go:embed *.sql
var Scripts embed.FS
