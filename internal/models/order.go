package models

import (
	"time"

	"github.com/shopspring/decimal"

	"giftcertificates/backend/internal/paging"
)

// Order records a user buying a gift certificate. Price is copied from the
// certificate when the order is placed and never changes afterwards.
type Order struct {
	ID                uint            `gorm:"primaryKey"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date              time.Time       `gorm:"not null"`
	UserID            uint            `gorm:"not null;index"`
	GiftCertificateID uint            `gorm:"not null;index"`

	User            User            `gorm:"foreignKey:UserID"`
	GiftCertificate GiftCertificate `gorm:"foreignKey:GiftCertificateID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderColumns lists the fields orders can be sorted by.
var OrderColumns = paging.Columns{
	"id":    "orders.id",
	"price": "orders.price",
	"date":  "orders.date",
}
