package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"vendorportal/internal/compliance"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// ParseFormat accepts csv, xlsx or pdf, case-insensitive. Empty means csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename is the attachment name for a vendor's report generated at t.
func (f Format) Filename(vendorID string, t time.Time) string {
	return fmt.Sprintf("compliance-%s-%s.%s", vendorID, t.Format("20060102"), f)
}

// Row is one line of the compliance table. Missing documents appear with status "required".
type Row struct {
	DocumentType string
	FileName     string
	Status       string
	Message      string
	ValidFrom    string
	ValidTo      string
	UploadedDate string
}

// Columns are the header labels, in Row field order.
var Columns = []string{"Document Type", "File Name", "Status", "Message", "Valid From", "Valid To", "Uploaded"}

func (r Row) values() []string {
	return []string{r.DocumentType, r.FileName, r.Status, r.Message, r.ValidFrom, r.ValidTo, r.UploadedDate}
}

// Report is a vendor's compliance snapshot at GeneratedAt.
type Report struct {
	VendorID    string
	CompanyName string
	GeneratedAt time.Time
	Metrics     compliance.Metrics
	Rows        []Row
}

func (r *Report) title() string {
	name := r.CompanyName
	if name == "" {
		name = r.VendorID
	}
	return "Compliance Documents: " + name
}

func (r *Report) summary() string {
	m := r.Metrics
	return fmt.Sprintf("Total %d | Verified %d | Pending %d | Review %d | Expiring %d | Expired %d | Required %d",
		m.Total, m.Verified, m.Pending, m.Review, m.Expiring, m.Expired, m.Required)
}

// Write renders rep to w in format f.
func Write(w io.Writer, f Format, rep *Report) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, rep)
	case FormatXLSX:
		return writeXLSX(w, rep)
	case FormatPDF:
		return writePDF(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}
