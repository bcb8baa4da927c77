package repository

import "github.com/shopspring/decimal"

// Filters hold optional match constraints; a nil field matches everything.
// String fields match case-insensitive substrings, numeric fields match exactly.

type TagFilter struct {
	Name *string
}

type GiftCertificateFilter struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Duration    *int
}

type OrderFilter struct {
	Price *decimal.Decimal
}

type UserFilter struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
}
