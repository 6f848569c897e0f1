package model

import "time"

// UploadRecord is one successful replace-upload, kept as an audit ledger.
// The upstream API remains the source of truth for the document list.
type UploadRecord struct {
	ID           string    `json:"id"`
	VendorID     string    `json:"vendor_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	StorageKey   string    `json:"storage_key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
}
