package models

import (
	"time"

	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/paging"
)

// GiftCertificate is a purchasable certificate valid for Duration days.
type GiftCertificate struct {
	ID             uint            `gorm:"primaryKey"`
	Name           string          `gorm:"size:255;not null"`
	Description    string          `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Duration       int             `gorm:"not null"`
	CreateDate     time.Time       `gorm:"not null"`
	LastUpdateDate time.Time       `gorm:"not null"`
	Tags           []Tag           `gorm:"many2many:gift_certificates_tags;"`
}

func (GiftCertificate) TableName() string {
	return "gift_certificates"
}

// GiftCertificateTag is a row of the certificate/tag join table.
type GiftCertificateTag struct {
	GiftCertificateID uint `gorm:"primaryKey"`
	TagID             uint `gorm:"primaryKey;index"`
}

func (GiftCertificateTag) TableName() string {
	return "gift_certificates_tags"
}

// GiftCertificateColumns lists the fields certificates can be sorted by.
var GiftCertificateColumns = paging.Columns{
	"id":             "gift_certificates.id",
	"name":           "gift_certificates.name",
	"description":    "gift_certificates.description",
	"price":          "gift_certificates.price",
	"duration":       "gift_certificates.duration",
	"createDate":     "gift_certificates.create_date",
	"lastUpdateDate": "gift_certificates.last_update_date",
}
