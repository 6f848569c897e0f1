package repository

import (
	"context"

	"vendorportal/internal/model"
)

// UploadRepository persists the replace-upload ledger. Persistence only, no business rules.
type UploadRepository interface {
	// Create inserts a new upload record and returns the stored row.
	Create(ctx context.Context, rec *model.UploadRecord) (*model.UploadRecord, error)

	// FindByID returns one record of a vendor. It returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, vendorID, id string) (*model.UploadRecord, error)

	// ListByVendor returns a vendor's records newest first, with the vendor's total count.
	ListByVendor(ctx context.Context, vendorID string, pq PageQuery) (*PageResult[model.UploadRecord], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
