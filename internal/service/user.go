package service

import (
	"context"
	"errors"

	"giftcertificates/backend/internal/apperror"
	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
)

// UserService defines user business operations.
type UserService interface {
	FindAll(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindOrdersByUserID(ctx context.Context, id uint, p paging.Pageable) (paging.Page[models.Order], error)
	Create(ctx context.Context, user *models.User) error
}

type userService struct {
	tx        repository.Transactor
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(tx repository.Transactor, userRepo repository.UserRepository, orderRepo repository.OrderRepository) UserService {
	return &userService{tx: tx, userRepo: userRepo, orderRepo: orderRepo}
}

func (s *userService) FindAll(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error) {
	if err := models.UserColumns.Validate(p); err != nil {
		return paging.Page[models.User]{}, err
	}
	return s.userRepo.FindAll(ctx, filter, p)
}

func (s *userService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, KindUser, id)
	}
	return user, nil
}

func (s *userService) FindOrdersByUserID(ctx context.Context, id uint, p paging.Pageable) (paging.Page[models.Order], error) {
	if err := models.OrderColumns.Validate(p); err != nil {
		return paging.Page[models.Order]{}, err
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return paging.Page[models.Order]{}, notFoundAs(err, KindUser, id)
	}
	return s.orderRepo.FindAllByUserID(ctx, id, p)
}

// Create stores a new user. Username is checked before email and the first
// clash is reported.
func (s *userService) Create(ctx context.Context, user *models.User) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, "username", user.Username, s.userRepo.FindByUsername); err != nil {
			return err
		}
		if err := s.ensureFree(ctx, "email", user.Email, s.userRepo.FindByEmail); err != nil {
			return err
		}
		return s.userRepo.Create(ctx, user)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return s.duplicateConflict(ctx, user, err)
	}
	return err
}

// duplicateConflict names the field that collided when a concurrent insert
// got past the checks in Create. It runs after the transaction rolled back.
func (s *userService) duplicateConflict(ctx context.Context, user *models.User, cause error) error {
	if err := s.ensureFree(ctx, "username", user.Username, s.userRepo.FindByUsername); errors.Is(err, apperror.ErrAlreadyExists) {
		return err
	}
	if err := s.ensureFree(ctx, "email", user.Email, s.userRepo.FindByEmail); errors.Is(err, apperror.ErrAlreadyExists) {
		return err
	}
	return apperror.AlreadyExists(KindUser, "username", user.Username).WithCause(cause)
}

func (s *userService) ensureFree(ctx context.Context, field, value string, find func(context.Context, string) (*models.User, error)) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return apperror.AlreadyExists(KindUser, field, value)
	case isNotFound(err):
		return nil
	default:
		return err
	}
}
