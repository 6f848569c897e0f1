package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"vendorportal/internal/compliance"
	"vendorportal/internal/model"
)

// Replace outcomes recorded on document_replace_total.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeInProgress = "in_progress"
	OutcomeStorage    = "storage_error"
	OutcomeUpstream   = "upstream_error"
)

// Recorder holds the document workflow collectors. A nil *Recorder records nothing.
type Recorder struct {
	replaceTotal *prometheus.CounterVec
	statusTotal  *prometheus.CounterVec
}

// New registers the document collectors on reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		replaceTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "document_replace_total",
				Help: "Replace-upload attempts by outcome.",
			},
			[]string{"outcome"},
		),
		statusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "document_status_total",
				Help: "Documents classified per display status across served overviews.",
			},
			[]string{"status"},
		),
	}

	for _, c := range []prometheus.Collector{r.replaceTotal, r.statusTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Replace counts one replace-upload attempt.
func (r *Recorder) Replace(outcome string) {
	if r == nil {
		return
	}
	r.replaceTotal.WithLabelValues(outcome).Inc()
}

// Statuses adds one overview's tallies.
func (r *Recorder) Statuses(m compliance.Metrics) {
	if r == nil {
		return
	}
	for _, status := range model.DisplayStatuses {
		if n := m.Count(status); n > 0 {
			r.statusTotal.WithLabelValues(string(status)).Add(float64(n))
		}
	}
}
