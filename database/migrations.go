package database

import "embed"

// Migrations holds the schema for each supported dialect under
// migrations/<driver>/, named in golang-migrate's NNNNNN_name.up.sql form.
//
//go:embed migrations
var Migrations embed.FS
