package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorportal/internal/compliance"
)

func TestRecorder_Replace(t *testing.T) {
	r, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	r.Replace(OutcomeSuccess)
	r.Replace(OutcomeSuccess)
	r.Replace(OutcomeUpstream)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.replaceTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.replaceTotal.WithLabelValues(OutcomeUpstream)))
}

func TestRecorder_Statuses(t *testing.T) {
	r, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	r.Statuses(compliance.Metrics{Total: 4, Verified: 2, Expiring: 1, Expired: 1, Required: 3})

	assert.Equal(t, float64(2), testutil.ToFloat64(r.statusTotal.WithLabelValues("verified")))
	assert.Equal(t, float64(3), testutil.ToFloat64(r.statusTotal.WithLabelValues("required")))
	assert.Equal(t, 4, testutil.CollectAndCount(r.statusTotal))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Replace(OutcomeSuccess)
		r.Statuses(compliance.Metrics{Verified: 1})
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
