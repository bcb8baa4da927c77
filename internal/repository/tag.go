package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
)

// mostWidelyUsedTagQuery picks the top spender (ties: lowest user id) and
// returns the tag found most often on their ordered certificates
// (ties: lowest tag id).
const mostWidelyUsedTagQuery = `
SELECT t.id, t.name
FROM tags AS t
INNER JOIN gift_certificates_tags AS gct ON gct.tag_id = t.id
INNER JOIN orders AS o ON o.gift_certificate_id = gct.gift_certificate_id
WHERE o.user_id = (
	SELECT user_id
	FROM orders
	GROUP BY user_id
	ORDER BY SUM(price) DESC, user_id ASC
	LIMIT 1
)
GROUP BY t.id, t.name
ORDER BY COUNT(*) DESC, t.id ASC
LIMIT 1`

// TagRepository defines tag data operations.
type TagRepository interface {
	FindAll(ctx context.Context, filter TagFilter, p paging.Pageable) (paging.Page[models.Tag], error)
	FindByID(ctx context.Context, id uint) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	FindOrCreateByName(ctx context.Context, name string) (*models.Tag, error)
	FindMostWidelyUsedByTopSpender(ctx context.Context) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	DeleteGiftCertificateRelations(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindAll(ctx context.Context, filter TagFilter, p paging.Pageable) (paging.Page[models.Tag], error) {
	page, err := paginate[models.Tag](conn(ctx, r.db), p, models.TagColumns, []scope{
		containsIgnoreCase("tags.name", filter.Name),
	})
	if err != nil {
		return page, fmt.Errorf("failed to list tags: %w", err)
	}
	return page, nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := conn(ctx, r.db).First(&tag, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find tag by id %d: %w", id, translate(err))
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := conn(ctx, r.db).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to find tag by name %s: %w", name, translate(err))
	}
	return &tag, nil
}

// FindOrCreateByName returns the tag called name, inserting it first if it
// does not exist. Concurrent callers converge on the same row.
func (r *tagRepository) FindOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	db := conn(ctx, r.db)
	candidate := models.Tag{Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert tag %s: %w", name, err)
	}
	if candidate.ID != 0 {
		return &candidate, nil
	}
	return r.FindByName(ctx, name)
}

func (r *tagRepository) FindMostWidelyUsedByTopSpender(ctx context.Context) (*models.Tag, error) {
	var tag models.Tag
	result := conn(ctx, r.db).Raw(mostWidelyUsedTagQuery).Scan(&tag)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find most widely used tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to find most widely used tag: %w", ErrNotFound)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := conn(ctx, r.db).Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", translate(err))
	}
	return nil
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	if err := conn(ctx, r.db).Model(tag).Update("name", tag.Name).Error; err != nil {
		return fmt.Errorf("failed to update tag id %d: %w", tag.ID, translate(err))
	}
	return nil
}

// DeleteGiftCertificateRelations detaches the tag from every certificate.
// It must run before Delete.
func (r *tagRepository) DeleteGiftCertificateRelations(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Where("tag_id = ?", id).Delete(&models.GiftCertificateTag{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete certificate relations of tag %d: %w", id, err)
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&models.Tag{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tag %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete tag %d: %w", id, ErrNotFound)
	}
	return nil
}
