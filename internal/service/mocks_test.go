package service

import (
	"context"
	"errors"
	"time"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Transactor
// =============================================================================

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// =============================================================================
// Mock TagRepository
// =============================================================================

type mockTagRepository struct {
	findAllFunc            func(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error)
	findByIDFunc           func(ctx context.Context, id uint) (*models.Tag, error)
	findByNameFunc         func(ctx context.Context, name string) (*models.Tag, error)
	findOrCreateByNameFunc func(ctx context.Context, name string) (*models.Tag, error)
	findMostWidelyUsedFunc func(ctx context.Context) (*models.Tag, error)
	createFunc             func(ctx context.Context, tag *models.Tag) error
	updateFunc             func(ctx context.Context, tag *models.Tag) error
	deleteRelationsFunc    func(ctx context.Context, id uint) error
	deleteFunc             func(ctx context.Context, id uint) error
}

func (m *mockTagRepository) FindAll(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.Tag]{}, errNotImplemented
}

func (m *mockTagRepository) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockTagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, errNotImplemented
}

func (m *mockTagRepository) FindOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	if m.findOrCreateByNameFunc != nil {
		return m.findOrCreateByNameFunc(ctx, name)
	}
	return nil, errNotImplemented
}

func (m *mockTagRepository) FindMostWidelyUsedByTopSpender(ctx context.Context) (*models.Tag, error) {
	if m.findMostWidelyUsedFunc != nil {
		return m.findMostWidelyUsedFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tag)
	}
	return errNotImplemented
}

func (m *mockTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, tag)
	}
	return errNotImplemented
}

func (m *mockTagRepository) DeleteGiftCertificateRelations(ctx context.Context, id uint) error {
	if m.deleteRelationsFunc != nil {
		return m.deleteRelationsFunc(ctx, id)
	}
	return errNotImplemented
}

func (m *mockTagRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

// =============================================================================
// Mock GiftCertificateRepository
// =============================================================================

type mockGiftCertificateRepository struct {
	findAllFunc       func(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findAllByTagFunc  func(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findAllByPartFunc func(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	findByIDFunc      func(ctx context.Context, id uint) (*models.GiftCertificate, error)
	createFunc        func(ctx context.Context, gc *models.GiftCertificate) error
	updateFunc        func(ctx context.Context, gc *models.GiftCertificate) error
	deleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockGiftCertificateRepository) FindAll(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateRepository) FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllByTagFunc != nil {
		return m.findAllByTagFunc(ctx, tagName, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateRepository) FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if m.findAllByPartFunc != nil {
		return m.findAllByPartFunc(ctx, part, p)
	}
	return paging.Page[models.GiftCertificate]{}, errNotImplemented
}

func (m *mockGiftCertificateRepository) FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockGiftCertificateRepository) Create(ctx context.Context, gc *models.GiftCertificate) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, gc)
	}
	return errNotImplemented
}

func (m *mockGiftCertificateRepository) Update(ctx context.Context, gc *models.GiftCertificate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, gc)
	}
	return errNotImplemented
}

func (m *mockGiftCertificateRepository) Delete(ctx context.Context, id uint) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

// =============================================================================
// Mock OrderRepository
// =============================================================================

type mockOrderRepository struct {
	findAllFunc         func(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error)
	findAllByUserIDFunc func(ctx context.Context, userID uint, p paging.Pageable) (paging.Page[models.Order], error)
	findByIDFunc        func(ctx context.Context, id uint) (*models.Order, error)
	createFunc          func(ctx context.Context, order *models.Order) error
}

func (m *mockOrderRepository) FindAll(ctx context.Context, filter repository.OrderFilter, p paging.Pageable) (paging.Page[models.Order], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.Order]{}, errNotImplemented
}

func (m *mockOrderRepository) FindAllByUserID(ctx context.Context, userID uint, p paging.Pageable) (paging.Page[models.Order], error) {
	if m.findAllByUserIDFunc != nil {
		return m.findAllByUserIDFunc(ctx, userID, p)
	}
	return paging.Page[models.Order]{}, errNotImplemented
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return errNotImplemented
}

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findAllFunc        func(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error)
	findByIDFunc       func(ctx context.Context, id uint) (*models.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	createFunc         func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter repository.UserFilter, p paging.Pageable) (paging.Page[models.User], error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, p)
	}
	return paging.Page[models.User]{}, errNotImplemented
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errNotImplemented
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errNotImplemented
}

// =============================================================================
// Test Helpers
// =============================================================================

// steppingClock returns start, then start+step, start+2*step, ...
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(step)
		return t
	}
}
