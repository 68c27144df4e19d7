// Package migrations registers the schema history. One file per table; each
// init() adds its migration to the runner's registry in timestamp order.
package migrations

import (
	"github.com/careerloft/careerloft/pkg/migration"
	"gorm.io/gorm"
)

// Migrate runs every pending migration.
func Migrate(db *gorm.DB) error {
	return migration.New(db).Run()
}

// Rollback reverses the most recent batch.
func Rollback(db *gorm.DB) error {
	return migration.New(db).Rollback()
}

// Status prints the ran/pending table.
func Status(db *gorm.DB) error {
	return migration.New(db).Status()
}
