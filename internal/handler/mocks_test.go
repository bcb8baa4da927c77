package handler

import (
	"context"
	"errors"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
	"giftcertificates/backend/internal/service"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Mock TagService
// =============================================================================

type mockTagService struct {
	findAllFunc            func(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error)
	findByIDFunc           func(ctx context.Context, id uint) (*models.Tag, error)
	findMostWidelyUsedFunc func(ctx context.Context) (*models.Tag, error)
	createFunc             func(ctx context.Context, name string) (*models.Tag, error)
	updateFunc             func(ctx context.Context, id uint, name string) (*models.Tag, error)
	deleteFunc             func(ctx context.Context, id uint) error
}

func (m *mockTagService) FindAll(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.Tag]{}, errNotImplemented
}

func (m *mockTagService) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockTagService) FindMostWidelyUsed(ctx context.Context) (*models.Tag, error) {
	if m.findMostWidelyUsedFunc != nil {
		return m.findMostWidelyUsedFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockTagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name)
	}
	return nil, errNotImplemented
}

func (m *mockTagService) Update(ctx context.Context, id uint, name string) (*models.Tag, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, name)
	}
	return nil, errNotImplemented
}

func (m *mockTagService) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

// =============================================================================
// Mock GiftCertificateService
// =============================================================================

type mockGiftCertificateService struct {
	findAllFunc       func(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findAllByTagFunc  func(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findAllByPartFunc func(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findAllSortedFunc func(ctx context.Context, sortBy, order string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findByIDFunc      func(ctx context.Context, id uint) (*models.GiftCertificate, error)
	createFunc        func(ctx context.Context, req service.NewGiftCertificate) (*models.GiftCertificate, error)
	updateFunc        func(ctx context.Context, id uint, patch service.GiftCertificatePatch) (*models.GiftCertificate, error)
	deleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockGiftCertificateService) FindAll(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateService) FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllByTagFunc != nil {
		return m.findAllByTagFunc(ctx, tagName, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateService) FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllByPartFunc != nil {
		return m.findAllByPartFunc(ctx, part, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateService) FindAllSortedBy(ctx context.Context, sortBy, order string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllSortedFunc != nil {
		return m.findAllSortedFunc(ctx, sortBy, order, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateService) FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockGiftCertificateService) Create(ctx context.Context, req service.NewGiftCertificate) (*models.GiftCertificate, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockGiftCertificateService) Update(ctx context.Context, id uint, patch service.GiftCertificatePatch) (*models.GiftCertificate, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, errNotImplemented
}

func (m *mockGiftCertificateService) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

// =============================================================================
// Mock OrderService
// =============================================================================

type mockOrderService struct {
	findAllFunc  func(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error)
	findByIDFunc func(ctx context.Context, id uint) (*models.Order, error)
	createFunc   func(ctx context.Context, userID, giftCertificateID uint) (*models.Order, error)
}

func (m *mockOrderService) FindAll(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.Order]{}, errNotImplemented
}

func (m *mockOrderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockOrderService) Create(ctx context.Context, userID, giftCertificateID uint) (*models.Order, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, giftCertificateID)
	}
	return nil, errNotImplemented
}

// =============================================================================
// Mock UserService
// =============================================================================

type mockUserService struct {
	findAllFunc    func(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error)
	findByIDFunc   func(ctx context.Context, id uint) (*models.User, error)
	findOrdersFunc func(ctx context.Context, id uint, p paging.Pageable) (paging.Page[models.Order], error)
	createFunc     func(ctx context.Context, user *models.User) error
}

func (m *mockUserService) FindAll(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.User]{}, errNotImplemented
}

func (m *mockUserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) FindOrdersByUserID(ctx context.Context, id uint, p paging.Pageable) (paging.Page[models.Order], error) {
	if m.findOrdersFunc != nil {
		return m.findOrdersFunc(ctx, id, p)
	}
	return paging.Page[models.Order]{}, errNotImplemented
}

func (m *mockUserService) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errNotImplemented
}
