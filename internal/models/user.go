// Package models contains the persisted and presentation data structures shared
// by the REST and GraphQL services.
package models

import "time"

// User represents a row in the users table.
//
// Profile and match score are presentation-only and derived per response; they
// are intentionally not part of the persisted schema.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
