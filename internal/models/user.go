package models

import "giftcertificates/backend/internal/paging"

// User is a customer who places orders.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:255;uniqueIndex;not null"`
	FirstName string `gorm:"size:255;not null"`
	LastName  string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
}

func (User) TableName() string {
	return "users"
}

// UserColumns lists the fields users can be sorted by.
var UserColumns = paging.Columns{
	"id":        "users.id",
	"username":  "users.username",
	"firstName": "users.first_name",
	"lastName":  "users.last_name",
	"email":     "users.email",
}
