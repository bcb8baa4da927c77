package service

import (
	"context"
	"errors"

	"giftcertificates/backend/internal/apperror"
	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
)

// TagService defines tag business operations.
type TagService interface {
	FindAll(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error)
	FindByID(ctx context.Context, id uint) (*models.Tag, error)
	FindMostWidelyUsed(ctx context.Context) (*models.Tag, error)
	Create(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, id uint, name string) (*models.Tag, error)
	Delete(ctx context.Context, id uint) error
}

type tagService struct {
	tx      repository.Transactor
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService instance.
func NewTagService(tx repository.Transactor, tagRepo repository.TagRepository) TagService {
	return &tagService{tx: tx, tagRepo: tagRepo}
}

func (s *tagService) FindAll(ctx context.Context, filter repository.TagFilter, p paging.Pageable) (paging.Page[models.Tag], error) {
	if err := models.TagColumns.Validate(p); err != nil {
		return paging.Page[models.Tag]{}, err
	}
	return s.tagRepo.FindAll(ctx, filter, p)
}

func (s *tagService) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, KindTag, id)
	}
	return tag, nil
}

// FindMostWidelyUsed returns the tag used most on the certificates ordered
// by the user whose orders cost the most in total.
func (s *tagService) FindMostWidelyUsed(ctx context.Context) (*models.Tag, error) {
	tag, err := s.tagRepo.FindMostWidelyUsedByTopSpender(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFoundf("Most widely used user tag with highest order amount not found").WithCause(err)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, name, 0); err != nil {
			return err
		}
		return s.tagRepo.Create(ctx, tag)
	})
	if err != nil {
		return nil, s.conflictOnDuplicate(err, name)
	}
	return tag, nil
}

// Update renames a tag. Keeping the current name is allowed.
func (s *tagService) Update(ctx context.Context, id uint, name string) (*models.Tag, error) {
	var tag *models.Tag
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		tag, err = s.tagRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, KindTag, id)
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return err
		}
		tag.Name = name
		return s.tagRepo.Update(ctx, tag)
	})
	if err != nil {
		return nil, s.conflictOnDuplicate(err, name)
	}
	return tag, nil
}

// Delete detaches the tag from every certificate and removes it.
func (s *tagService) Delete(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.tagRepo.FindByID(ctx, id); err != nil {
			return notFoundAs(err, KindTag, id)
		}
		if err := s.tagRepo.DeleteGiftCertificateRelations(ctx, id); err != nil {
			return err
		}
		return notFoundAs(s.tagRepo.Delete(ctx, id), KindTag, id)
	})
}

// ensureNameFree fails when name belongs to a tag other than ownerID.
func (s *tagService) ensureNameFree(ctx context.Context, name string, ownerID uint) error {
	existing, err := s.tagRepo.FindByName(ctx, name)
	switch {
	case err == nil:
		if existing.ID != ownerID {
			return apperror.AlreadyExists(KindTag, "name", name)
		}
		return nil
	case isNotFound(err):
		return nil
	default:
		return err
	}
}

// conflictOnDuplicate covers a concurrent insert slipping past ensureNameFree.
func (s *tagService) conflictOnDuplicate(err error, name string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.AlreadyExists(KindTag, "name", name).WithCause(err)
	}
	return err
}
