package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"vendorportal/internal/model"
	"vendorportal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var uploadCols = []string{"id", "vendor_id", "document_type", "file_name", "file_url", "storage_key", "size", "content_type", "created_at"}

func TestUploadPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUploadPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.UploadRecord{
		ID:           "up-1",
		VendorID:     "v-1",
		DocumentType: "Tax Clearance Certificate",
		FileName:     "tax.pdf",
		FileURL:      "https://files.test/b/vendors/v-1/documents/x.pdf",
		StorageKey:   "vendors/v-1/documents/x.pdf",
		Size:         123,
		ContentType:  "application/pdf",
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows(uploadCols).
		AddRow(rec.ID, rec.VendorID, rec.DocumentType, rec.FileName, rec.FileURL, rec.StorageKey, rec.Size, rec.ContentType, rec.CreatedAt)

	mock.ExpectQuery("INSERT INTO document_uploads").
		WithArgs(rec.ID, rec.VendorID, rec.DocumentType, rec.FileName, rec.FileURL, rec.StorageKey, rec.Size, rec.ContentType, rec.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, rec)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, rec.ID, result.ID)
	assert.Equal(t, rec.StorageKey, result.StorageKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUploadPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(uploadCols).
			AddRow("up-1", "v-1", "Tax Clearance Certificate", "tax.pdf", "u", "k", 100, "application/pdf", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM document_uploads WHERE vendor_id = (.+) AND id = (.+)").
			WithArgs("v-1", "up-1").
			WillReturnRows(rows)

		rec, err := repo.FindByID(ctx, "v-1", "up-1")

		assert.NoError(t, err)
		assert.Equal(t, "up-1", rec.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_uploads WHERE vendor_id = (.+) AND id = (.+)").
			WithArgs("v-1", "missing").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, "v-1", "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadPostgres_ListByVendor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUploadPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM document_uploads WHERE vendor_id").
			WithArgs("v-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(uploadCols).
			AddRow("up-2", "v-1", "Tax Clearance Certificate", "tax.pdf", "u2", "k2", 100, "application/pdf", time.Now()).
			AddRow("up-1", "v-1", "Company Profile", "profile.png", "u1", "k1", 50, "image/png", time.Now().Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM document_uploads WHERE vendor_id = (.+) ORDER BY").
			WithArgs("v-1", 10, 0).
			WillReturnRows(rows)

		res, err := repo.ListByVendor(ctx, "v-1", repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "up-2", res.Items[0].ID)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM document_uploads WHERE vendor_id").
			WithArgs("v-1").
			WillReturnError(sql.ErrConnDone)

		res, err := repo.ListByVendor(ctx, "v-1", repository.PageQuery{Limit: 10})

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
