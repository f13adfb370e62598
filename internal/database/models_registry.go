package database

import "warbler/internal/models"

// PersistentModels returns every model that owns a database table, in
// creation order (parents before the edge tables that reference them).
func PersistentModels() []any {
	return []any{
		&models.User{},
		&models.Message{},
		&models.Follows{},
		&models.Likes{},
	}
}
