// Package service holds the business rules of the API: existence and
// uniqueness checks, timestamps and transaction boundaries. Services return
// *apperror.Error for every failure a client can act on.
package service

import (
	"errors"
	"time"

	"giftcertificates/backend/internal/apperror"
	"giftcertificates/backend/internal/repository"
)

// Entity kinds as they appear in client-facing messages.
const (
	KindTag             = "Tag"
	KindGiftCertificate = "Gift certificate"
	KindOrder           = "Order"
	KindUser            = "User"
)

// notFoundAs replaces a repository not-found error with a client-facing one
// naming kind and id. Other errors pass through unchanged.
func notFoundAs(err error, kind string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(kind, id).WithCause(err)
	}
	return err
}

// isNotFound reports whether err means the looked-up row does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// timestamp truncates t to the precision the database keeps.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
