package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"vendorportal/internal/model"
)

// State is a replace-upload flow state.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file-selected"
	case StateUploading:
		return "uploading"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// DefaultMaxBytes is the largest accepted file (10 MB).
const DefaultMaxBytes = 10 * 1024 * 1024

// AllowedContentTypes is the MIME allow-list for replacement files.
var AllowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

// File is a locally selected file. Content is rewound before a retry.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.ReadSeeker
}

// Validity is the validity window entered alongside the file.
type Validity struct {
	From string
	To   string
}

// Submitter performs the network part of a replace-upload: store the file, merge the
// metadata into the vendor's list and resubmit it. It returns the stored document.
type Submitter func(ctx context.Context, f File, v Validity) (*model.Document, error)

// Flow is the replace-upload state machine for one document.
// idle -> file-selected -> uploading -> idle on success, file-selected on error.
// Flows are independent of each other; nothing coordinates two flows for the same vendor.
type Flow struct {
	mu                sync.Mutex
	state             State
	file              *File
	lastErr           error
	maxBytes          int64
	hasValidityPeriod bool
	submit            Submitter
}

// NewFlow creates an idle flow. hasValidityPeriod makes both validity dates mandatory on submit.
// A maxBytes of zero or less uses DefaultMaxBytes.
func NewFlow(submit Submitter, hasValidityPeriod bool, maxBytes int64) *Flow {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Flow{
		state:             StateIdle,
		maxBytes:          maxBytes,
		hasValidityPeriod: hasValidityPeriod,
		submit:            submit,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Selected returns the selected file, or nil.
func (f *Flow) Selected() *File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file
}

// Err returns the error of the last failed submit. It is cleared by the next transition.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Select validates and selects a file. On rejection the flow stays where it was.
// Selecting while a file is already selected replaces it.
func (f *Flow) Select(file File) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUploading {
		return ErrUploadInProgress
	}
	if err := validateFile(file, f.maxBytes); err != nil {
		return err
	}
	f.file = &file
	f.lastErr = nil
	f.state = StateFileSelected
	return nil
}

// Cancel drops the selected file and returns to idle.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUploading {
		return ErrUploadInProgress
	}
	f.file = nil
	f.lastErr = nil
	f.state = StateIdle
	return nil
}

// Submit runs the submitter once. There is no automatic retry; on failure the file
// stays selected so the caller can submit again.
func (f *Flow) Submit(ctx context.Context, v Validity) (*model.Document, error) {
	f.mu.Lock()
	switch f.state {
	case StateUploading:
		f.mu.Unlock()
		return nil, ErrUploadInProgress
	case StateIdle:
		f.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	if f.hasValidityPeriod {
		if strings.TrimSpace(v.From) == "" {
			f.mu.Unlock()
			return nil, ValidationError{Field: "validFrom", Value: v.From, Message: "valid from date is required"}
		}
		if strings.TrimSpace(v.To) == "" {
			f.mu.Unlock()
			return nil, ValidationError{Field: "validTo", Value: v.To, Message: "valid to date is required"}
		}
	} else {
		v = Validity{}
	}
	file := *f.file
	f.state = StateUploading
	f.lastErr = nil
	f.mu.Unlock()

	doc, err := f.submit(ctx, file, v)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		if _, seekErr := file.Content.Seek(0, io.SeekStart); seekErr != nil {
			err = fmt.Errorf("%w (rewind failed: %v)", err, seekErr)
		}
		f.lastErr = err
		f.state = StateFileSelected
		return nil, err
	}
	f.file = nil
	f.state = StateIdle
	return doc, nil
}

func validateFile(file File, maxBytes int64) error {
	if file.Content == nil {
		return ValidationError{Field: "file", Value: file.Name, Message: "file is required"}
	}
	ct := strings.ToLower(strings.TrimSpace(file.ContentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if _, ok := AllowedContentTypes[ct]; !ok {
		return ValidationError{Field: "file", Value: file.ContentType, Message: "only PDF, JPEG and PNG files are allowed"}
	}
	if file.Size > maxBytes {
		return ValidationError{Field: "file", Value: file.Size, Message: fmt.Sprintf("file must be %d MB or smaller", maxBytes/(1024*1024))}
	}
	return nil
}
