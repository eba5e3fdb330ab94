package models

import "time"

// Order represents a row in the orders table. Every order references an
// existing user; deleting users is unsupported, so no cascade rules exist.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Product   string    `gorm:"not null" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderWithUser is the flat shape produced by joining an order with its owning
// user. The REST hello endpoint and the GraphQL orders query both read this.
type OrderWithUser struct {
	ID        uint      `json:"id"`
	Product   string    `json:"product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
}
