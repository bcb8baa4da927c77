package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"giftcertificates/backend/internal/models"
	"giftcertificates/backend/internal/paging"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPaginate_LoadsRequestedPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "tags" ORDER BY tags.name DESC,tags.id ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "travel").AddRow(1, "beauty"))

	page, err := repo.FindAll(context.Background(), TagFilter{}, paging.New(0, 2, paging.ParseSort("name,desc")))

	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{ID: 2, Name: "travel"}, {ID: 1, Name: "beauty"}}, page.Content)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_SkipsLoadBeyondLastPage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := repo.FindAll(context.Background(), TagFilter{}, paging.New(5, 10))

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotNil(t, page.Content)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 5, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := repo.FindAll(context.Background(), TagFilter{}, paging.New(100000000000000000, paging.MaxSize))

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 100000000000000000, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsIgnoreCase_EscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)
	name := "50%_off"

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags" WHERE tags.name ILIKE`).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.FindAll(context.Background(), TagFilter{Name: &name}, paging.New(0, 20))

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE "tags"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	tag, err := repo.FindByID(context.Background(), 999)

	assert.Nil(t, tag)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`INSERT INTO "tags"`).
		WithArgs("beauty").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &models.Tag{Name: "beauty"})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectExec(`DELETE FROM "tags" WHERE "tags"."id" = \$1`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMostWidelyUsedByTopSpender_NoOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT t.id, t.name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	tag, err := repo.FindMostWidelyUsedByTopSpender(context.Background())

	assert.Nil(t, tag)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_CommitsAndSharesTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)
	tx := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "gift_certificates_tags" WHERE tag_id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "tags" WHERE "tags"."id" = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.DeleteGiftCertificateRelations(ctx, 7); err != nil {
			return err
		}
		return repo.Delete(ctx, 7)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)
	tx := NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "gift_certificates_tags"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "tags"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if err := repo.DeleteGiftCertificateRelations(ctx, 7); err != nil {
			return err
		}
		return repo.Delete(ctx, 7)
	})

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllByTagName_MatchesExactTagName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGiftCertificateRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "gift_certificates" WHERE gift_certificates.id IN \(SELECT .*gift_certificate_id.* FROM gift_certificates_tags AS gct INNER JOIN tags AS t ON t.id = gct.tag_id WHERE t.name = \$1\)`).
		WithArgs("spa").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.FindAllByTagName(context.Background(), "spa", paging.New(0, 20))

	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllByPartNameOrDescription_SearchesBothColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGiftCertificateRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "gift_certificates" WHERE \(?gift_certificates.name ILIKE \$1 OR gift_certificates.description ILIKE \$2\)?`).
		WithArgs(`%gift\_box%`, `%gift\_box%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.FindAllByPartNameOrDescription(context.Background(), "gift_box", paging.New(0, 20))

	require.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByName_InsertsNewTag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`INSERT INTO "tags" \("name"\) VALUES \(\$1\) ON CONFLICT \("name"\) DO NOTHING RETURNING "id"`).
		WithArgs("spa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	tag, err := repo.FindOrCreateByName(context.Background(), "spa")

	require.NoError(t, err)
	assert.Equal(t, &models.Tag{ID: 5, Name: "spa"}, tag)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByName_ReturnsExistingTag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`INSERT INTO "tags" \("name"\) VALUES \(\$1\) ON CONFLICT \("name"\) DO NOTHING RETURNING "id"`).
		WithArgs("spa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1 ORDER BY "tags"."id" LIMIT \$2`).
		WithArgs("spa", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "spa"))

	tag, err := repo.FindOrCreateByName(context.Background(), "spa")

	require.NoError(t, err)
	assert.Equal(t, &models.Tag{ID: 3, Name: "spa"}, tag)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMostWidelyUsedByTopSpender_TieBreaks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`GROUP BY user_id ORDER BY SUM\(price\) DESC, user_id ASC LIMIT 1 \) GROUP BY t.id, t.name ORDER BY COUNT\(\*\) DESC, t.id ASC LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "travel"))

	tag, err := repo.FindMostWidelyUsedByTopSpender(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &models.Tag{ID: 2, Name: "travel"}, tag)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCertificateUpdate_ReplacesTagLinks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGiftCertificateRepository(db)
	gc := &models.GiftCertificate{
		ID:             4,
		Name:           "Spa day",
		Description:    "A full day in the spa",
		Price:          decimal.RequireFromString("99.90"),
		Duration:       30,
		LastUpdateDate: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Tags:           []models.Tag{{ID: 1, Name: "beauty"}, {ID: 2, Name: "spa"}},
	}

	mock.ExpectExec(`UPDATE "gift_certificates" SET .* WHERE .*"id" = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "gift_certificates_tags" WHERE gift_certificate_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "gift_certificates_tags" \("gift_certificate_id","tag_id"\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs(4, 1, 4, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Update(context.Background(), gc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCertificateUpdate_EmptyTagsOnlyClearsLinks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGiftCertificateRepository(db)
	gc := &models.GiftCertificate{ID: 4, Name: "Spa day", Description: "d", Price: decimal.NewFromInt(10), Duration: 1}

	mock.ExpectExec(`UPDATE "gift_certificates" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "gift_certificates_tags" WHERE gift_certificate_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.Update(context.Background(), gc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftCertificateDelete_RemovesLinksFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGiftCertificateRepository(db)

	mock.ExpectExec(`DELETE FROM "gift_certificates_tags" WHERE gift_certificate_id = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "gift_certificates" WHERE "gift_certificates"."id" = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
