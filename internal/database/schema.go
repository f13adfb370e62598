package database

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateAll creates or updates every table in the model registry.
// Safe to call repeatedly.
func CreateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// DropAll removes every table in the registry, ignoring tables that do not
// exist. Edge tables drop first so postgres foreign keys don't block the
// parents.
func DropAll(db *gorm.DB) error {
	registry := PersistentModels()
	for i := len(registry) - 1; i >= 0; i-- {
		model := registry[i]
		if !db.Migrator().HasTable(model) {
			continue
		}
		if err := db.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("drop table for %T: %w", model, err)
		}
	}
	return nil
}
