package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownReviewStatus is returned by ParseReviewStatus for a status this service does not know.
var ErrUnknownReviewStatus = errors.New("unknown review status")

// ReviewStatus is the status a back-office reviewer sets on a document.
type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "pending"
	ReviewApproved    ReviewStatus = "approved"
	ReviewNeedsReview ReviewStatus = "needs review"
)

// ParseReviewStatus matches s case-insensitively against the known statuses.
// An empty string is pending.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ReviewPending):
		return ReviewPending, nil
	case string(ReviewApproved):
		return ReviewApproved, nil
	case string(ReviewNeedsReview):
		return ReviewNeedsReview, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReviewStatus, s)
	}
}

// Known reports whether s is one of the statuses this service understands.
func (s ReviewStatus) Known() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewNeedsReview:
		return true
	}
	return false
}

// UnmarshalJSON normalizes known statuses. An unknown status is kept verbatim so a
// resubmitted document list carries it back unchanged; Known reports it.
func (s *ReviewStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseReviewStatus(raw)
	if errors.Is(err, ErrUnknownReviewStatus) {
		*s = ReviewStatus(strings.TrimSpace(raw))
		return nil
	}
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DisplayStatus is derived on every read from the review status, the validity window and the clock.
// It is never persisted.
type DisplayStatus string

const (
	DisplayVerified DisplayStatus = "verified"
	DisplayPending  DisplayStatus = "pending"
	DisplayReview   DisplayStatus = "review"
	DisplayExpiring DisplayStatus = "expiring"
	DisplayExpired  DisplayStatus = "expired"
	// DisplayRequired marks a placeholder for a required document that was never uploaded.
	DisplayRequired DisplayStatus = "required"
)

// DisplayStatuses lists every display status in dashboard order.
var DisplayStatuses = []DisplayStatus{
	DisplayVerified,
	DisplayPending,
	DisplayReview,
	DisplayExpiring,
	DisplayExpired,
	DisplayRequired,
}
