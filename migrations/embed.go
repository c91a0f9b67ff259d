// Package migrations embeds the goose SQL migrations so every binary (and the
// test helper) can bring a fresh database file up to the current schema.
//
// Schema changes are additive only: new tables and indexes may be appended in
// new migration files, existing ones are never renamed or dropped, so older
// database files stay readable across versions.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
