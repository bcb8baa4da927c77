package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/optional"
	"giftcertificates/backend/internal/paging"
	"giftcertificates/backend/internal/repository"
)

// NewGiftCertificate describes a certificate to create. Tags are given by
// name and created on demand.
type NewGiftCertificate struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    int
	TagNames    []string
}

// GiftCertificatePatch is a partial update. Absent fields keep their stored
// value; present TagNames replace the whole tag list.
type GiftCertificatePatch struct {
	Name        optional.Value[string]
	Description optional.Value[string]
	Price       optional.Value[decimal.Decimal]
	Duration    optional.Value[int]
	TagNames    optional.Value[[]string]
}

// Apply returns gc with the present fields of the patch merged in. Tags
// named by the patch carry no id yet.
func (p GiftCertificatePatch) Apply(gc models.GiftCertificate) models.GiftCertificate {
	gc.Name = p.Name.OrElse(gc.Name)
	gc.Description = p.Description.OrElse(gc.Description)
	gc.Price = p.Price.OrElse(gc.Price)
	gc.Duration = p.Duration.OrElse(gc.Duration)
	if names, ok := p.TagNames.Get(); ok {
		gc.Tags = make([]models.Tag, 0, len(names))
		for _, name := range uniqueNames(names) {
			gc.Tags = append(gc.Tags, models.Tag{Name: name})
		}
	}
	return gc
}

// GiftCertificateService defines gift certificate business operations.
type GiftCertificateService interface {
	FindAll(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindAllSortedBy(ctx context.Context, sortBy, order string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error)
	Create(ctx context.Context, req NewGiftCertificate) (*models.GiftCertificate, error)
	Update(ctx context.Context, id uint, patch GiftCertificatePatch) (*models.GiftCertificate, error)
	Delete(ctx context.Context, id uint) error
}

type giftCertificateService struct {
	tx      repository.Transactor
	gcRepo  repository.GiftCertificateRepository
	tagRepo repository.TagRepository
	now     func() time.Time
}

// NewGiftCertificateService creates a new GiftCertificateService instance.
func NewGiftCertificateService(tx repository.Transactor, gcRepo repository.GiftCertificateRepository, tagRepo repository.TagRepository) GiftCertificateService {
	return &giftCertificateService{tx: tx, gcRepo: gcRepo, tagRepo: tagRepo, now: time.Now}
}

func (s *giftCertificateService) FindAll(ctx context.Context, filter repository.GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if err := models.GiftCertificateColumns.Validate(p); err != nil {
		return paging.Page[models.GiftCertificate]{}, err
	}
	return s.gcRepo.FindAll(ctx, filter, p)
}

// FindAllByTagName matches the tag name exactly, case included.
func (s *giftCertificateService) FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if err := models.GiftCertificateColumns.Validate(p); err != nil {
		return paging.Page[models.GiftCertificate]{}, err
	}
	return s.gcRepo.FindAllByTagName(ctx, tagName, p)
}

// FindAllByPartNameOrDescription matches part against name or description,
// ignoring case.
func (s *giftCertificateService) FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	if err := models.GiftCertificateColumns.Validate(p); err != nil {
		return paging.Page[models.GiftCertificate]{}, err
	}
	return s.gcRepo.FindAllByPartNameOrDescription(ctx, part, p)
}

// FindAllSortedBy lists every certificate ordered by one field. Any order
// other than "desc" sorts ascending.
func (s *giftCertificateService) FindAllSortedBy(ctx context.Context, sortBy, order string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	p.Sort = []paging.Sort{{Field: sortBy, Direction: paging.ParseDirection(order)}}
	return s.FindAll(ctx, repository.GiftCertificateFilter{}, p)
}

func (s *giftCertificateService) FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error) {
	gc, err := s.gcRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, KindGiftCertificate, id)
	}
	return gc, nil
}

func (s *giftCertificateService) Create(ctx context.Context, req NewGiftCertificate) (*models.GiftCertificate, error) {
	now := timestamp(s.now())
	gc := &models.GiftCertificate{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Duration:       req.Duration,
		CreateDate:     now,
		LastUpdateDate: now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		tags, err := s.resolveTags(ctx, req.TagNames)
		if err != nil {
			return err
		}
		gc.Tags = tags
		return s.gcRepo.Create(ctx, gc)
	})
	if err != nil {
		return nil, err
	}
	return gc, nil
}

// Update merges patch into the stored certificate. LastUpdateDate always
// moves forward, even when the clock does not.
func (s *giftCertificateService) Update(ctx context.Context, id uint, patch GiftCertificatePatch) (*models.GiftCertificate, error) {
	var updated models.GiftCertificate
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.gcRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, KindGiftCertificate, id)
		}

		updated = patch.Apply(*current)
		if patch.TagNames.IsSet() {
			names := make([]string, len(updated.Tags))
			for i, tag := range updated.Tags {
				names[i] = tag.Name
			}
			if updated.Tags, err = s.resolveTags(ctx, names); err != nil {
				return err
			}
		}
		updated.LastUpdateDate = s.nextUpdateDate(current.LastUpdateDate)
		return s.gcRepo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *giftCertificateService) Delete(ctx context.Context, id uint) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.gcRepo.FindByID(ctx, id); err != nil {
			return notFoundAs(err, KindGiftCertificate, id)
		}
		return notFoundAs(s.gcRepo.Delete(ctx, id), KindGiftCertificate, id)
	})
}

// resolveTags finds or creates one tag per distinct name, keeping the order
// in which names first appear.
func (s *giftCertificateService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	unique := uniqueNames(names)
	tags := make([]models.Tag, 0, len(unique))
	for _, name := range unique {
		tag, err := s.tagRepo.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *giftCertificateService) nextUpdateDate(previous time.Time) time.Time {
	now := timestamp(s.now())
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
