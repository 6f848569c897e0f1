package postgres

import (
	"context"
	"database/sql"

	"vendorportal/internal/model"
	"vendorportal/internal/repository"
)

// UploadPostgres is a PostgreSQL implementation of repository.UploadRepository.
type UploadPostgres struct {
	db *sql.DB
}

// NewUploadPostgres creates a new UploadPostgres repository.
func NewUploadPostgres(db *sql.DB) *UploadPostgres {
	return &UploadPostgres{db: db}
}

var _ repository.UploadRepository = (*UploadPostgres)(nil)

const uploadColumns = `id, vendor_id, document_type, file_name, file_url, storage_key, size, content_type, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpload(s rowScanner) (*model.UploadRecord, error) {
	var u model.UploadRecord
	if err := s.Scan(
		&u.ID,
		&u.VendorID,
		&u.DocumentType,
		&u.FileName,
		&u.FileURL,
		&u.StorageKey,
		&u.Size,
		&u.ContentType,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new upload row and returns the stored record.
func (r *UploadPostgres) Create(ctx context.Context, rec *model.UploadRecord) (*model.UploadRecord, error) {
	const q = `
		INSERT INTO document_uploads (` + uploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + uploadColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.VendorID,
		rec.DocumentType,
		rec.FileName,
		rec.FileURL,
		rec.StorageKey,
		rec.Size,
		rec.ContentType,
		rec.CreatedAt,
	)
	return scanUpload(row)
}

// FindByID fetches a single upload of a vendor.
func (r *UploadPostgres) FindByID(ctx context.Context, vendorID, id string) (*model.UploadRecord, error) {
	const q = `SELECT ` + uploadColumns + ` FROM document_uploads WHERE vendor_id = $1 AND id = $2`
	return scanUpload(r.db.QueryRowContext(ctx, q, vendorID, id))
}

// ListByVendor returns a vendor's uploads using LIMIT/OFFSET pagination and a total count.
func (r *UploadPostgres) ListByVendor(ctx context.Context, vendorID string, pq repository.PageQuery) (*repository.PageResult[model.UploadRecord], error) {
	const qCount = `SELECT COUNT(*) FROM document_uploads WHERE vendor_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, vendorID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + uploadColumns + `
		FROM document_uploads
		WHERE vendor_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, vendorID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UploadRecord, 0)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.UploadRecord]{
		Items: items,
		Total: total,
	}, nil
}
