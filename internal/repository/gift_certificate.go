package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
)

// GiftCertificateRepository defines gift certificate data operations.
// Tags are stored through the explicit gift_certificates_tags join table.
type GiftCertificateRepository interface {
	FindAll(ctx context.Context, filter GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error)
	FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error)
	Create(ctx context.Context, gc *models.GiftCertificate) error
	Update(ctx context.Context, gc *models.GiftCertificate) error
	Delete(ctx context.Context, id uint) error
}

type giftCertificateRepository struct {
	db *gorm.DB
}

// NewGiftCertificateRepository creates a new GiftCertificateRepository instance.
func NewGiftCertificateRepository(db *gorm.DB) GiftCertificateRepository {
	return &giftCertificateRepository{db: db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.id")
	})
}

func (r *giftCertificateRepository) FindAll(ctx context.Context, filter GiftCertificateFilter, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	page, err := paginate[models.GiftCertificate](conn(ctx, r.db), p, models.GiftCertificateColumns, []scope{
		containsIgnoreCase("gift_certificates.name", filter.Name),
		containsIgnoreCase("gift_certificates.description", filter.Description),
		equals("gift_certificates.price", filter.Price),
		equals("gift_certificates.duration", filter.Duration),
	}, preloadTags)
	if err != nil {
		return page, fmt.Errorf("failed to list gift certificates: %w", err)
	}
	return page, nil
}

func (r *giftCertificateRepository) FindAllByTagName(ctx context.Context, tagName string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	db := conn(ctx, r.db)
	tagged := db.Session(&gorm.Session{NewDB: true}).
		Table("gift_certificates_tags AS gct").
		Select("gct.gift_certificate_id").
		Joins("INNER JOIN tags AS t ON t.id = gct.tag_id").
		Where("t.name = ?", tagName)

	page, err := paginate[models.GiftCertificate](db, p, models.GiftCertificateColumns, []scope{
		func(db *gorm.DB) *gorm.DB {
			return db.Where("gift_certificates.id IN (?)", tagged)
		},
	}, preloadTags)
	if err != nil {
		return page, fmt.Errorf("failed to list gift certificates by tag %s: %w", tagName, err)
	}
	return page, nil
}

func (r *giftCertificateRepository) FindAllByPartNameOrDescription(ctx context.Context, part string, p paging.Pageable) (paging.Page[models.GiftCertificate], error) {
	pattern := "%" + likeEscaper.Replace(part) + "%"
	page, err := paginate[models.GiftCertificate](conn(ctx, r.db), p, models.GiftCertificateColumns, []scope{
		func(db *gorm.DB) *gorm.DB {
			return db.Where("gift_certificates.name ILIKE ? OR gift_certificates.description ILIKE ?", pattern, pattern)
		},
	}, preloadTags)
	if err != nil {
		return page, fmt.Errorf("failed to list gift certificates by part %s: %w", part, err)
	}
	return page, nil
}

func (r *giftCertificateRepository) FindByID(ctx context.Context, id uint) (*models.GiftCertificate, error) {
	var gc models.GiftCertificate
	if err := preloadTags(conn(ctx, r.db)).First(&gc, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find gift certificate by id %d: %w", id, translate(err))
	}
	return &gc, nil
}

// Create inserts the certificate and links its tags. Tags must already be
// persisted.
func (r *giftCertificateRepository) Create(ctx context.Context, gc *models.GiftCertificate) error {
	db := conn(ctx, r.db)
	if err := db.Omit("Tags").Create(gc).Error; err != nil {
		return fmt.Errorf("failed to create gift certificate: %w", err)
	}
	return replaceTags(db, gc.ID, gc.Tags)
}

// Update writes every scalar column and replaces the tag links.
func (r *giftCertificateRepository) Update(ctx context.Context, gc *models.GiftCertificate) error {
	db := conn(ctx, r.db)
	err := db.Model(gc).
		Select("name", "description", "price", "duration", "last_update_date").
		Updates(gc).Error
	if err != nil {
		return fmt.Errorf("failed to update gift certificate id %d: %w", gc.ID, err)
	}
	return replaceTags(db, gc.ID, gc.Tags)
}

func (r *giftCertificateRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	if err := db.Where("gift_certificate_id = ?", id).Delete(&models.GiftCertificateTag{}).Error; err != nil {
		return fmt.Errorf("failed to delete tag relations of gift certificate %d: %w", id, err)
	}
	result := db.Delete(&models.GiftCertificate{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete gift certificate %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete gift certificate %d: %w", id, ErrNotFound)
	}
	return nil
}

func replaceTags(db *gorm.DB, giftCertificateID uint, tags []models.Tag) error {
	err := db.Where("gift_certificate_id = ?", giftCertificateID).Delete(&models.GiftCertificateTag{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear tags of gift certificate %d: %w", giftCertificateID, err)
	}
	if len(tags) == 0 {
		return nil
	}

	links := make([]models.GiftCertificateTag, len(tags))
	for i, tag := range tags {
		links[i] = models.GiftCertificateTag{GiftCertificateID: giftCertificateID, TagID: tag.ID}
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link tags to gift certificate %d: %w", giftCertificateID, err)
	}
	return nil
}
