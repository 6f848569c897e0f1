package compliance

import (
	"fmt"
	"time"

	"vendorportal/internal/model"
)

const (
	// MinExpiringThresholdDays is the floor of the expiring window.
	MinExpiringThresholdDays = 60
	// ExpiringWindowFraction is the share of the validity window flagged as expiring.
	ExpiringWindowFraction = 0.2

	MessageNeedsReview = "Document requires review"
	MessageExpired     = "Document has expired"
)

// Classification is the display status of one document at one instant.
type Classification struct {
	Status  model.DisplayStatus `json:"status"`
	Message string              `json:"message,omitempty"`
	// DaysRemaining is set only for expiring documents.
	DaysRemaining int `json:"days_remaining,omitempty"`
}

// Classify derives the display status of doc at now. First matching rule wins:
// needs review, expired window, expired end date, expiring, approved, pending.
//
// The expiring threshold is max(60, 20% of the window) days, so documents with a
// window shorter than 60 days are expiring for their whole life.
func Classify(doc model.Document, now time.Time) Classification {
	if doc.Status.Status == model.ReviewNeedsReview {
		msg := doc.Status.Message
		if msg == "" {
			msg = MessageNeedsReview
		}
		return Classification{Status: model.DisplayReview, Message: msg}
	}

	validFrom, hasFrom := ParseDate(doc.ValidFrom)
	validTo, hasTo := ParseDate(doc.ValidTo)

	if hasFrom && hasTo && validTo.Before(now) {
		return Classification{Status: model.DisplayExpired, Message: MessageExpired}
	}
	if !hasFrom && hasTo && validTo.Before(now) {
		return Classification{Status: model.DisplayExpired}
	}

	if hasTo {
		remaining := DaysBetween(now, validTo)
		total := 0
		if hasFrom {
			total = DaysBetween(validFrom, validTo)
		}
		if remaining > 0 && remaining <= expiringThreshold(total) {
			return Classification{
				Status:        model.DisplayExpiring,
				Message:       fmt.Sprintf("Document expires in %d days", remaining),
				DaysRemaining: remaining,
			}
		}
	}

	if doc.Status.Status == model.ReviewApproved {
		return Classification{Status: model.DisplayVerified}
	}
	// pending, empty and statuses unknown to this service
	return Classification{Status: model.DisplayPending}
}

func expiringThreshold(totalDays int) int {
	share := int(float64(totalDays) * ExpiringWindowFraction)
	if share < MinExpiringThresholdDays {
		return MinExpiringThresholdDays
	}
	return share
}
