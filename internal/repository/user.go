// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/whoismarios/sa-gateway-demo/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines read operations for users. The query layers never
// write user rows; only the seed initializer does.
type UserRepository interface {
	List(ctx context.Context, limit int) ([]models.User, error)
	All(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Search(ctx context.Context, term string) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return users, nil
}

func (r *userRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return users, nil
}

// GetByID returns nil, nil when no user exists; absence is not an error for
// the query layers (GraphQL maps it to a null result). The id is passed to the
// store as-is: a non-numeric id either errors at the store or matches nothing,
// the same way the original services behaved.
func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewDatabaseError(err)
	}
	return &user, nil
}

// Search matches the term as a case-insensitive substring against name OR
// email. An empty term matches every user; the original behaved the same way
// via its %% pattern.
func (r *userRepository) Search(ctx context.Context, term string) ([]models.User, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("id").
		Find(&users).Error; err != nil {
		return nil, models.NewDatabaseError(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, models.NewDatabaseError(err)
	}
	return count, nil
}
