package compliance

import "vendorportal/internal/model"

// Metrics are the dashboard counts by display status.
type Metrics struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Review   int `json:"review"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	Required int `json:"required"`
}

// Count returns the tally for one display status.
func (m Metrics) Count(s model.DisplayStatus) int {
	switch s {
	case model.DisplayVerified:
		return m.Verified
	case model.DisplayPending:
		return m.Pending
	case model.DisplayReview:
		return m.Review
	case model.DisplayExpiring:
		return m.Expiring
	case model.DisplayExpired:
		return m.Expired
	case model.DisplayRequired:
		return m.Required
	}
	return 0
}

// Tally counts classified documents plus one required entry per missing preset.
// Total covers uploaded documents only.
func Tally(classified []Classification, missing []model.DocumentPreset) Metrics {
	m := Metrics{Total: len(classified), Required: len(missing)}
	for _, c := range classified {
		switch c.Status {
		case model.DisplayVerified:
			m.Verified++
		case model.DisplayPending:
			m.Pending++
		case model.DisplayReview:
			m.Review++
		case model.DisplayExpiring:
			m.Expiring++
		case model.DisplayExpired:
			m.Expired++
		case model.DisplayRequired:
			m.Required++
		}
	}
	return m
}
