// Package seeders populates a fresh database with the rows the app needs to
// be usable: the first admin account and the default package catalogue.
package seeders

import (
	"github.com/careerloft/careerloft/pkg/logger"
	"gorm.io/gorm"
)

// Seeder is one idempotent seed step.
type Seeder interface {
	Name() string
	Run(db *gorm.DB) error
}

var registry []Seeder

// Register adds a seeder. Seeders run in registration order.
func Register(s Seeder) {
	registry = append(registry, s)
}

// RunAll executes every registered seeder.
func RunAll(db *gorm.DB) error {
	for _, s := range registry {
		if err := s.Run(db); err != nil {
			return err
		}
		logger.Info("seed: done", "seeder", s.Name())
	}
	return nil
}
