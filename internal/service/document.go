package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vendorportal/internal/cache"
	"vendorportal/internal/compliance"
	"vendorportal/internal/metrics"
	"vendorportal/internal/model"
	"vendorportal/internal/portal"
	"vendorportal/internal/report"
	"vendorportal/internal/repository"
	"vendorportal/internal/storage"
	"vendorportal/internal/upload"
)

var (
	ErrIDRequired    = errors.New("vendor id is required")
	ErrNotFound      = errors.New("upload not found")
	ErrStorageUpload = errors.New("storage upload failed")
	// ErrUnauthorized is returned when a vendor-scoped read carries no bearer token.
	ErrUnauthorized = errors.New("bearer token required")
)

const (
	// DefaultCacheTTL applies when Options.CacheTTL is zero.
	DefaultCacheTTL = time.Minute
	// DefaultPreviewExpiry is the lifetime of presigned preview links.
	DefaultPreviewExpiry = 15 * time.Minute

	cacheCompanyDetails  = "company-details"
	cacheDocumentPresets = "document-presets"
)

var tracer = otel.Tracer("vendorportal/internal/service")

// ClassifiedDocument is an uploaded document with its display status at read time.
type ClassifiedDocument struct {
	model.Document
	Display compliance.Classification `json:"display"`
}

// Overview is the compliance page of one vendor.
type Overview struct {
	VendorID    string                 `json:"vendorId"`
	CompanyName string                 `json:"companyName"`
	Documents   []ClassifiedDocument   `json:"documents"`
	Missing     []model.DocumentPreset `json:"missing"`
	Metrics     compliance.Metrics     `json:"metrics"`
	// PresetsLoaded is false when the catalog could not be fetched and Missing is empty for that reason.
	PresetsLoaded bool `json:"presetsLoaded"`
}

// ReplaceRequest carries one replace-upload.
type ReplaceRequest struct {
	DocumentType      string
	HasValidityPeriod bool
	File              upload.File
	Validity          upload.Validity
}

// UploadListResult is the service-level DTO for the paginated ledger.
type UploadListResult struct {
	Items []model.UploadRecord `json:"data"`
	Total int                  `json:"total"`
}

// DocumentService is the vendor compliance-document workflow.
type DocumentService interface {
	// Overview classifies the vendor's documents, lists missing required documents and tallies the metrics.
	Overview(ctx context.Context, vendorID string) (*Overview, error)

	// Missing returns the required presets the vendor has not uploaded.
	Missing(ctx context.Context, vendorID string) ([]model.DocumentPreset, error)

	// Presets returns the document catalog.
	Presets(ctx context.Context) ([]model.DocumentPreset, error)

	// Replace stores a new file for a document type and resubmits the vendor's whole document list.
	// The uploaded object is deleted again when the upstream submission fails.
	Replace(ctx context.Context, vendorID string, req ReplaceRequest) (*model.Document, error)

	// Uploads returns the vendor's replace-upload ledger using limit/offset and a total count.
	Uploads(ctx context.Context, vendorID string, limit, offset int) (*UploadListResult, error)

	// UploadFile streams the stored file of a ledger entry. The caller closes the reader.
	UploadFile(ctx context.Context, vendorID, id string) (io.ReadCloser, *model.UploadRecord, error)

	// PreviewURL returns a presigned link to the stored file of a ledger entry.
	PreviewURL(ctx context.Context, vendorID, id string) (string, error)

	// DocumentFile streams a stored document by the file name in its fileUrl. The caller closes the reader.
	DocumentFile(ctx context.Context, vendorID, fileName string) (io.ReadCloser, storage.ObjectInfo, error)

	// Report writes the vendor's overview to w in the given format.
	Report(ctx context.Context, vendorID string, format report.Format, w io.Writer) error
}

// Options tunes a DocumentService. Zero values pick defaults.
type Options struct {
	Clock          func() time.Time
	CacheTTL       time.Duration
	MaxUploadBytes int64
	PreviewExpiry  time.Duration
	// FileBaseURL prefixes the fileUrl written upstream, e.g. "https://portal-api.example.go.id".
	// Empty yields a host-relative URL.
	FileBaseURL string
	Metrics     *metrics.Recorder
	Logger      zerolog.Logger
}

type documentService struct {
	api           portal.API
	store         storage.Storage
	repo          repository.UploadRepository
	companyCache  *cache.Query[*model.CompanyDetails]
	presetsCache  *cache.Query[[]model.DocumentPreset]
	now           func() time.Time
	maxBytes      int64
	previewExpiry time.Duration
	fileBaseURL   string
	metrics       *metrics.Recorder
	log           zerolog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(api portal.API, store storage.Storage, repo repository.UploadRepository, cacheStore cache.Store, opts Options) DocumentService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = upload.DefaultMaxBytes
	}
	if opts.PreviewExpiry <= 0 {
		opts.PreviewExpiry = DefaultPreviewExpiry
	}
	return &documentService{
		api:           api,
		store:         store,
		repo:          repo,
		companyCache:  cache.NewQuery[*model.CompanyDetails](cacheStore, cacheCompanyDetails, opts.CacheTTL),
		presetsCache:  cache.NewQuery[[]model.DocumentPreset](cacheStore, cacheDocumentPresets, opts.CacheTTL),
		now:           opts.Clock,
		maxBytes:      opts.MaxUploadBytes,
		previewExpiry: opts.PreviewExpiry,
		fileBaseURL:   strings.TrimRight(opts.FileBaseURL, "/"),
		metrics:       opts.Metrics,
		log:           opts.Logger.With().Str("component", "document_service").Logger(),
	}
}

// logger prefers the request-scoped logger attached by the HTTP layer.
func (s *documentService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.log
}

// companyDetails is cached per vendor and caller, so a cached entry is only served to the token
// upstream accepted for it. Tokenless reads always go upstream.
func (s *documentService) companyDetails(ctx context.Context, vendorID string) (*model.CompanyDetails, error) {
	token := portal.TokenFromContext(ctx)
	if token == "" {
		return s.api.CompanyDetails(ctx, vendorID)
	}
	return s.companyCache.Fetch(ctx, func(ctx context.Context) (*model.CompanyDetails, error) {
		return s.api.CompanyDetails(ctx, vendorID)
	}, vendorID, callerKey(token))
}

func callerKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}

// authorize asks upstream whether the caller may read vendorID before local ledger or storage reads.
func (s *documentService) authorize(ctx context.Context, vendorID string) error {
	if portal.TokenFromContext(ctx) == "" {
		return ErrUnauthorized
	}
	if _, err := s.api.CompanyDetails(ctx, vendorID); err != nil {
		return fmt.Errorf("authorize vendor: %w", err)
	}
	return nil
}

// Presets returns the document catalog, cached.
func (s *documentService) Presets(ctx context.Context) ([]model.DocumentPreset, error) {
	return s.presetsCache.Fetch(ctx, s.api.DocumentPresets)
}

// presetsOrNil treats a catalog failure as "not loaded".
func (s *documentService) presetsOrNil(ctx context.Context) []model.DocumentPreset {
	presets, err := s.Presets(ctx)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("document_presets_unavailable")
		return nil
	}
	return presets
}

func (s *documentService) Overview(ctx context.Context, vendorID string) (*Overview, error) {
	if vendorID == "" {
		return nil, ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Overview", trace.WithAttributes(attribute.String("vendor.id", vendorID)))
	defer span.End()

	details, err := s.companyDetails(ctx, vendorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "company details")
		return nil, fmt.Errorf("load company details: %w", err)
	}
	presets := s.presetsOrNil(ctx)

	now := s.now()
	docs := make([]ClassifiedDocument, 0, len(details.Documents))
	classes := make([]compliance.Classification, 0, len(details.Documents))
	for _, d := range details.Documents {
		if d.Status.Status != "" && !d.Status.Status.Known() {
			s.logger(ctx).Warn().
				Str("vendor_id", vendorID).
				Str("document_id", d.ID).
				Str("review_status", string(d.Status.Status)).
				Msg("unknown_review_status")
		}
		c := compliance.Classify(d, now)
		docs = append(docs, ClassifiedDocument{Document: d, Display: c})
		classes = append(classes, c)
	}
	missing := compliance.MissingDocuments(details.Documents, presets)
	tally := compliance.Tally(classes, missing)
	s.metrics.Statuses(tally)

	span.SetAttributes(attribute.Int("documents.total", tally.Total), attribute.Int("documents.missing", len(missing)))

	return &Overview{
		VendorID:      vendorID,
		CompanyName:   details.CompanyName,
		Documents:     docs,
		Missing:       missing,
		Metrics:       tally,
		PresetsLoaded: presets != nil,
	}, nil
}

func (s *documentService) Missing(ctx context.Context, vendorID string) ([]model.DocumentPreset, error) {
	if vendorID == "" {
		return nil, ErrIDRequired
	}
	details, err := s.companyDetails(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("load company details: %w", err)
	}
	return compliance.MissingDocuments(details.Documents, s.presetsOrNil(ctx)), nil
}

func (s *documentService) Replace(ctx context.Context, vendorID string, req ReplaceRequest) (*model.Document, error) {
	if vendorID == "" {
		return nil, ErrIDRequired
	}
	docType := strings.TrimSpace(req.DocumentType)
	if docType == "" {
		s.metrics.Replace(metrics.OutcomeValidation)
		return nil, upload.ValidationError{Field: "documentType", Value: req.DocumentType, Message: "document type is required"}
	}

	ctx, span := tracer.Start(ctx, "DocumentService.Replace", trace.WithAttributes(
		attribute.String("vendor.id", vendorID),
		attribute.String("document.type", docType),
		attribute.Int64("file.size", req.File.Size),
	))
	defer span.End()

	flow := upload.NewFlow(s.submitter(vendorID, docType, req.HasValidityPeriod), req.HasValidityPeriod, s.maxBytes)
	if err := flow.Select(req.File); err != nil {
		return nil, s.replaceFailed(ctx, span, err)
	}
	if req.HasValidityPeriod {
		if err := validateWindow(req.Validity); err != nil {
			return nil, s.replaceFailed(ctx, span, err)
		}
	}

	doc, err := flow.Submit(ctx, req.Validity)
	if err != nil {
		return nil, s.replaceFailed(ctx, span, err)
	}

	s.metrics.Replace(metrics.OutcomeSuccess)
	s.logger(ctx).Info().
		Str("vendor_id", vendorID).
		Str("document_type", docType).
		Str("file_name", doc.FileName).
		Int64("size", doc.FileSize).
		Msg("document_replaced")
	return doc, nil
}

func (s *documentService) replaceFailed(ctx context.Context, span trace.Span, err error) error {
	outcome := replaceOutcome(err)
	s.metrics.Replace(outcome)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)

	ev := s.logger(ctx).Warn()
	if outcome == metrics.OutcomeStorage || outcome == metrics.OutcomeUpstream {
		ev = s.logger(ctx).Error()
	}
	ev.Err(err).Str("outcome", outcome).Msg("document_replace_failed")
	return err
}

// replaceOutcome labels a failed replace. Anything past the storage step is an upstream failure.
func replaceOutcome(err error) string {
	switch {
	case upload.IsValidation(err):
		return metrics.OutcomeValidation
	case errors.Is(err, upload.ErrUploadInProgress):
		return metrics.OutcomeInProgress
	case errors.Is(err, ErrStorageUpload):
		return metrics.OutcomeStorage
	default:
		return metrics.OutcomeUpstream
	}
}

// validateWindow checks entered dates that are present: they must parse and validTo must not precede validFrom.
// Emptiness is the flow's concern.
func validateWindow(v upload.Validity) error {
	from, okFrom := compliance.ParseDate(v.From)
	if strings.TrimSpace(v.From) != "" && !okFrom {
		return upload.ValidationError{Field: "validFrom", Value: v.From, Message: "valid from must be a date (YYYY-MM-DD)"}
	}
	to, okTo := compliance.ParseDate(v.To)
	if strings.TrimSpace(v.To) != "" && !okTo {
		return upload.ValidationError{Field: "validTo", Value: v.To, Message: "valid to must be a date (YYYY-MM-DD)"}
	}
	if okFrom && okTo && to.Before(from) {
		return upload.ValidationError{Field: "validTo", Value: v.To, Message: "valid to must not be before valid from"}
	}
	return nil
}

// submitter uploads the file, merges it into a freshly fetched document list and resubmits the list.
func (s *documentService) submitter(vendorID, docType string, hasValidityPeriod bool) upload.Submitter {
	return func(ctx context.Context, f upload.File, v upload.Validity) (*model.Document, error) {
		key := storage.VendorDocumentKey(vendorID, uuid.NewString()+strings.ToLower(filepath.Ext(f.Name)))
		obj, err := s.store.Put(ctx, key, f.Content, storage.PutObjectOptions{
			Size:        f.Size,
			ContentType: f.ContentType,
			Metadata: map[string]string{
				"original-filename": f.Name,
				"vendor-id":         vendorID,
				"document-type":     docType,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageUpload, err)
		}

		now := s.now().UTC()
		doc := model.Document{
			DocumentType:      docType,
			FileURL:           s.fileURL(vendorID, path.Base(obj.Key)),
			FileName:          f.Name,
			FileSize:          f.Size,
			FileType:          f.ContentType,
			HasValidityPeriod: hasValidityPeriod,
			ValidFrom:         v.From,
			ValidTo:           v.To,
			Status:            model.DocumentStatus{Status: model.ReviewPending},
			UploadedDate:      &now,
		}

		// Always merge into the live list; a cached copy could drop a concurrent edit.
		details, err := s.api.CompanyDetails(ctx, vendorID)
		if err != nil {
			s.rollback(ctx, obj.Key)
			return nil, fmt.Errorf("load company details: %w", err)
		}
		docs, merged := mergeDocument(details.Documents, doc)

		if err := s.api.CompleteRegistration(ctx, vendorID, portal.StepDocuments, documentsPayload{Documents: docs}); err != nil {
			s.rollback(ctx, obj.Key)
			return nil, fmt.Errorf("submit documents: %w", err)
		}

		if err := s.companyCache.Invalidate(ctx, vendorID); err != nil {
			s.logger(ctx).Warn().Err(err).Str("vendor_id", vendorID).Msg("cache_invalidate_failed")
		}
		s.recordUpload(ctx, vendorID, docType, f, obj, merged.FileURL, now)

		return &merged, nil
	}
}

// fileURL points at this service's DocumentFile route. The bucket stays private.
func (s *documentService) fileURL(vendorID, fileName string) string {
	return s.fileBaseURL + "/vendors/" + url.PathEscape(vendorID) + "/documents/files/" + url.PathEscape(fileName)
}

type documentsPayload struct {
	Documents []model.Document `json:"documents"`
}

// mergeDocument replaces the first document of the same type, keeping its ID and creation time,
// or appends doc when the type is new. existing is not modified.
func mergeDocument(existing []model.Document, doc model.Document) ([]model.Document, model.Document) {
	out := make([]model.Document, 0, len(existing)+1)
	out = append(out, existing...)

	want := compliance.NormalizeDocumentType(doc.DocumentType)
	for i, d := range out {
		if compliance.NormalizeDocumentType(d.DocumentType) == want {
			doc.ID = d.ID
			doc.CreatedAt = d.CreatedAt
			out[i] = doc
			return out, doc
		}
	}
	return append(out, doc), doc
}

func (s *documentService) rollback(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger(ctx).Error().Err(err).Str("storage_key", key).Msg("rollback_delete_failed")
	}
}

// recordUpload appends to the ledger. The upstream list is already committed, so failures are only logged.
func (s *documentService) recordUpload(ctx context.Context, vendorID, docType string, f upload.File, obj storage.ObjectInfo, fileURL string, at time.Time) {
	size := obj.Size
	if size <= 0 {
		size = f.Size
	}
	rec := &model.UploadRecord{
		ID:           uuid.NewString(),
		VendorID:     vendorID,
		DocumentType: docType,
		FileName:     f.Name,
		FileURL:      fileURL,
		StorageKey:   obj.Key,
		Size:         size,
		ContentType:  f.ContentType,
		CreatedAt:    at,
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		s.logger(ctx).Error().Err(err).Str("vendor_id", vendorID).Str("storage_key", obj.Key).Msg("upload_ledger_write_failed")
	}
}

// Uploads returns the ledger without exposing repository types.
func (s *documentService) Uploads(ctx context.Context, vendorID string, limit, offset int) (*UploadListResult, error) {
	if vendorID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	if err := s.authorize(ctx, vendorID); err != nil {
		return nil, err
	}

	res, err := s.repo.ListByVendor(ctx, vendorID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UploadListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) findUpload(ctx context.Context, vendorID, id string) (*model.UploadRecord, error) {
	if vendorID == "" || id == "" {
		return nil, ErrIDRequired
	}
	if err := s.authorize(ctx, vendorID); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByID(ctx, vendorID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *documentService) UploadFile(ctx context.Context, vendorID, id string) (io.ReadCloser, *model.UploadRecord, error) {
	rec, err := s.findUpload(ctx, vendorID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return rc, rec, nil
}

func (s *documentService) PreviewURL(ctx context.Context, vendorID, id string) (string, error) {
	rec, err := s.findUpload(ctx, vendorID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, rec.StorageKey, s.previewExpiry)
}

func (s *documentService) DocumentFile(ctx context.Context, vendorID, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	if vendorID == "" {
		return nil, storage.ObjectInfo{}, ErrIDRequired
	}
	if fileName == "" || fileName != path.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	if err := s.authorize(ctx, vendorID); err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, storage.VendorDocumentKey(vendorID, fileName))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("get object: %w", err)
	}
	return rc, info, nil
}

func (s *documentService) Report(ctx context.Context, vendorID string, format report.Format, w io.Writer) error {
	ov, err := s.Overview(ctx, vendorID)
	if err != nil {
		return err
	}

	rep := &report.Report{
		VendorID:    vendorID,
		CompanyName: ov.CompanyName,
		GeneratedAt: s.now(),
		Metrics:     ov.Metrics,
		Rows:        make([]report.Row, 0, len(ov.Documents)+len(ov.Missing)),
	}
	for _, d := range ov.Documents {
		row := report.Row{
			DocumentType: d.DocumentType,
			FileName:     d.FileName,
			Status:       string(d.Display.Status),
			Message:      d.Display.Message,
			ValidFrom:    displayDate(d.ValidFrom),
			ValidTo:      displayDate(d.ValidTo),
		}
		if d.UploadedDate != nil {
			row.UploadedDate = compliance.FormatDate(*d.UploadedDate)
		}
		rep.Rows = append(rep.Rows, row)
	}
	for _, p := range ov.Missing {
		rep.Rows = append(rep.Rows, report.Row{DocumentType: p.DocumentName, Status: string(model.DisplayRequired)})
	}

	return report.Write(w, format, rep)
}

func displayDate(s string) string {
	if t, ok := compliance.ParseDate(s); ok {
		return compliance.FormatDate(t)
	}
	return s
}
