package models

import "giftcertificates/backend/internal/paging"

// Tag labels gift certificates (e.g., "beauty", "spa", "travel").
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagColumns lists the fields tags can be sorted by.
var TagColumns = paging.Columns{
	"id":   "tags.id",
	"name": "tags.name",
}
