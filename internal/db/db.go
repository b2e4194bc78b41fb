// Package db holds the embedded SQL migrations and the runner that applies
// them at startup.
package db

import "embed"

//go:embed migrations/*.sql
var MigrationFS embed.FS
