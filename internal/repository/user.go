package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
)

// UserRepository defines user data operations.
type UserRepository interface {
	FindAll(ctx context.Context, filter UserFilter, p paging.Pageable) (paging.Page[models.User], error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindAll(ctx context.Context, filter UserFilter, p paging.Pageable) (paging.Page[models.User], error) {
	page, err := paginate[models.User](conn(ctx, r.db), p, models.UserColumns, []scope{
		containsIgnoreCase("users.username", filter.Username),
		containsIgnoreCase("users.first_name", filter.FirstName),
		containsIgnoreCase("users.last_name", filter.LastName),
		containsIgnoreCase("users.email", filter.Email),
	})
	if err != nil {
		return page, fmt.Errorf("failed to list users: %w", err)
	}
	return page, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, translate(err))
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, translate(err))
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, translate(err))
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}
