package handler

import (
	"bytes"
	"mime"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vendorportal/internal/report"
	"vendorportal/internal/service"
	"vendorportal/internal/upload"
)

// GetPresets returns the document catalog.
//
// @Summary List document presets
// @Tags documents
// @Produce json
// @Success 200 {array} model.DocumentPreset
// @Failure 502 {object} errorPayload
// @Router /document-presets [get]
func GetPresets(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presets, err := svc.Presets(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(presets)
	}
}

// GetOverview returns classified documents, missing required documents and metrics.
//
// @Summary Vendor compliance overview
// @Tags documents
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Success 200 {object} service.Overview
// @Failure 502 {object} errorPayload
// @Router /vendors/{vendorID}/documents [get]
func GetOverview(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ov, err := svc.Overview(c.UserContext(), c.Params("vendorID"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ov)
	}
}

// GetMissing returns the required presets the vendor has not uploaded.
//
// @Summary Missing required documents
// @Tags documents
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Success 200 {array} model.DocumentPreset
// @Router /vendors/{vendorID}/documents/missing [get]
func GetMissing(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		missing, err := svc.Missing(c.UserContext(), c.Params("vendorID"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": missing, "total": len(missing)})
	}
}

// ReplaceDocument uploads a replacement file (multipart/form-data) and resubmits the vendor's list.
// Fields: file, documentType, hasValidityPeriod, validFrom, validTo.
//
// @Summary Replace a document
// @Tags documents
// @Accept mpfd
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Param file formData file true "PDF, JPEG or PNG, at most 10 MB"
// @Param documentType formData string true "Document type"
// @Param hasValidityPeriod formData boolean false "Whether validFrom and validTo are required"
// @Param validFrom formData string false "YYYY-MM-DD"
// @Param validTo formData string false "YYYY-MM-DD"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /vendors/{vendorID}/documents/replace [post]
func ReplaceDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		hasValidity := false
		if v := c.FormValue("hasValidityPeriod"); v != "" {
			hasValidity, err = strconv.ParseBool(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_VALIDITY_FLAG", "hasValidityPeriod must be true or false")
			}
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := svc.Replace(c.UserContext(), c.Params("vendorID"), service.ReplaceRequest{
			DocumentType:      c.FormValue("documentType"),
			HasValidityPeriod: hasValidity,
			File: upload.File{
				Name:        fh.Filename,
				ContentType: contentTypeOf(fh.Header.Get(fiber.HeaderContentType), fh.Filename),
				Size:        fh.Size,
				Content:     f,
			},
			Validity: upload.Validity{
				From: c.FormValue("validFrom"),
				To:   c.FormValue("validTo"),
			},
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(doc)
	}
}

// contentTypeOf trusts the part header unless it is missing or generic, then falls back to the extension.
func contentTypeOf(header, filename string) string {
	if header != "" && header != fiber.MIMEOctetStream {
		return header
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return fiber.MIMEOctetStream
}

// GetReport exports the overview as csv (default), xlsx or pdf.
//
// @Summary Export compliance report
// @Tags documents
// @Produce octet-stream
// @Param vendorID path string true "Vendor ID"
// @Param format query string false "csv, xlsx or pdf"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Router /vendors/{vendorID}/documents/report [get]
func GetReport(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format, err := report.ParseFormat(c.Query("format"))
		if err != nil {
			return writeServiceError(c, err)
		}

		vendorID := c.Params("vendorID")
		var buf bytes.Buffer
		if err := svc.Report(c.UserContext(), vendorID, format, &buf); err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(format.Filename(vendorID, timeNow()))
		c.Set(fiber.HeaderContentType, format.ContentType())
		return c.Send(buf.Bytes())
	}
}

// ListUploads returns the vendor's replace-upload ledger with limit & offset.
//
// @Summary List replace-uploads
// @Tags uploads
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.UploadListResult
// @Router /vendors/{vendorID}/uploads [get]
func ListUploads(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Uploads(c.UserContext(), c.Params("vendorID"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadUpload streams the stored file of a ledger entry.
//
// @Summary Download a replace-upload
// @Tags uploads
// @Produce octet-stream
// @Param vendorID path string true "Vendor ID"
// @Param uploadID path string true "Upload ID"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /vendors/{vendorID}/uploads/{uploadID}/file [get]
func DownloadUpload(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("uploadID")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, rec, err := svc.UploadFile(c.UserContext(), c.Params("vendorID"), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(rec.FileName)
		c.Set(fiber.HeaderContentType, rec.ContentType)
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(rec.Size))
	}
}

// GetDocumentFile streams a stored document file. Uploaded documents carry this route as their fileUrl.
//
// @Summary Stream a document file
// @Tags documents
// @Produce octet-stream
// @Param vendorID path string true "Vendor ID"
// @Param fileName path string true "Stored file name"
// @Success 200 {file} file
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /vendors/{vendorID}/documents/files/{fileName} [get]
func GetDocumentFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("fileName")
		rc, info, err := svc.DocumentFile(c.UserContext(), c.Params("vendorID"), name)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(rc, int(info.Size))
	}
}

// PreviewUpload returns a short-lived presigned link to the stored file.
//
// @Summary Preview link for a replace-upload
// @Tags uploads
// @Produce json
// @Param vendorID path string true "Vendor ID"
// @Param uploadID path string true "Upload ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /vendors/{vendorID}/uploads/{uploadID}/preview [get]
func PreviewUpload(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("uploadID")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := svc.PreviewURL(c.UserContext(), c.Params("vendorID"), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
