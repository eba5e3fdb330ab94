package database

import "github.com/whoismarios/sa-gateway-demo/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Order{},
	}
}
