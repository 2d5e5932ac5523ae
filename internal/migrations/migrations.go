// Package migrations holds the bun migration registry. Each migration file
// registers itself via init; cmd/db drives the migrator.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the global migration collection.
var Migrations = migrate.NewMigrations()
