package model

import "time"

// Document is a vendor-submitted compliance file as the upstream portal API returns it.
// FileURL points into object storage owned by a separate service.
type Document struct {
	ID                string         `json:"id,omitempty"`
	DocumentType      string         `json:"documentType"`
	FileURL           string         `json:"fileUrl"`
	FileName          string         `json:"fileName"`
	FileSize          int64          `json:"fileSize"`
	FileType          string         `json:"fileType"`
	HasValidityPeriod bool           `json:"hasValidityPeriod"`
	ValidFrom         string         `json:"validFrom,omitempty"`
	ValidTo           string         `json:"validTo,omitempty"`
	Status            DocumentStatus `json:"status"`
	UploadedDate      *time.Time     `json:"uploadedDate,omitempty"`
	CreatedAt         *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time     `json:"updatedAt,omitempty"`
}

// DocumentStatus is the reviewer-owned part of a document.
type DocumentStatus struct {
	Status  ReviewStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// DocumentPreset is a catalog entry describing a document vendors are expected to provide.
type DocumentPreset struct {
	DocumentName     string `json:"documentName"`
	IsRequired       bool   `json:"isRequired"`
	HasExpiry        bool   `json:"hasExpiry"`
	RenewalFrequency string `json:"renewalFrequency,omitempty"`
}

// CompanyDetails is the vendor profile slice this service reads.
type CompanyDetails struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"companyName"`
	Documents   []Document `json:"documents"`
}
