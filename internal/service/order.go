package service

import (
	"context"
	"time"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
)

// OrderService defines order business operations.
type OrderService interface {
	FindAll(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, userID, giftCertificateID uint) (*models.Order, error)
}

type orderService struct {
	tx        repository.Transactor
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	gcRepo    repository.GiftCertificateRepository
	now       func() time.Time
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(tx repository.Transactor, orderRepo repository.OrderRepository, userRepo repository.UserRepository, gcRepo repository.GiftCertificateRepository) OrderService {
	return &orderService{tx: tx, orderRepo: orderRepo, userRepo: userRepo, gcRepo: gcRepo, now: time.Now}
}

func (s *orderService) FindAll(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error) {
	if err := models.OrderColumns.Validate(p); err != nil {
		return paging.Page[models.Order]{}, err
	}
	return s.orderRepo.FindAll(ctx, filter, p)
}

func (s *orderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, KindOrder, id)
	}
	return order, nil
}

// Create places an order at the certificate's current price. Nothing is
// written unless both the user and the certificate exist.
func (s *orderService) Create(ctx context.Context, userID, giftCertificateID uint) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return notFoundAs(err, KindUser, userID)
		}
		gc, err := s.gcRepo.FindByID(ctx, giftCertificateID)
		if err != nil {
			return notFoundAs(err, KindGiftCertificate, giftCertificateID)
		}

		order = &models.Order{
			Price:             gc.Price,
			Date:              timestamp(s.now()),
			UserID:            user.ID,
			GiftCertificateID: gc.ID,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		order.User = *user
		order.GiftCertificate = *gc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
