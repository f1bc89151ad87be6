package repository

import (
	"context"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository provides access to the users table
type UserRepository interface {
	// FindByEmail returns the user with the given email or ErrNotFound
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns the user with the given id or ErrNotFound
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// Insert persists a new user and fills its generated fields
	Insert(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm backed UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}
