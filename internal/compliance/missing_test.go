package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vendorportal/internal/model"
)

func TestMissingDocuments(t *testing.T) {
	presets := []model.DocumentPreset{
		{DocumentName: "Tax Clearance Certificate", IsRequired: true, HasExpiry: true},
		{DocumentName: "Certificate of Incorporation", IsRequired: true},
		{DocumentName: "Company Profile", IsRequired: false},
	}

	t.Run("case and whitespace insensitive match", func(t *testing.T) {
		docs := []model.Document{
			{DocumentType: " tax clearance certificate "},
			{DocumentType: "CERTIFICATE OF INCORPORATION"},
		}
		assert.Empty(t, MissingDocuments(docs, presets))
	})

	t.Run("required presets without uploads are missing", func(t *testing.T) {
		docs := []model.Document{{DocumentType: "Tax Clearance Certificate"}}
		got := MissingDocuments(docs, presets)
		assert.Equal(t, []model.DocumentPreset{presets[1]}, got)
	})

	t.Run("optional presets are never missing", func(t *testing.T) {
		got := MissingDocuments([]model.Document{}, presets)
		assert.Len(t, got, 2)
		for _, p := range got {
			assert.True(t, p.IsRequired)
		}
	})

	t.Run("no fuzzy matching", func(t *testing.T) {
		docs := []model.Document{
			{DocumentType: "Tax Clearance Cert"},
			{DocumentType: "Certificate of Incorporation"},
		}
		got := MissingDocuments(docs, presets)
		assert.Equal(t, []model.DocumentPreset{presets[0]}, got)
	})

	t.Run("presets not loaded yields empty list", func(t *testing.T) {
		got := MissingDocuments([]model.Document{}, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("documents not loaded yields empty list", func(t *testing.T) {
		assert.Empty(t, MissingDocuments(nil, presets))
	})
}

func TestTally(t *testing.T) {
	classified := []Classification{
		{Status: model.DisplayVerified},
		{Status: model.DisplayVerified},
		{Status: model.DisplayPending},
		{Status: model.DisplayReview},
		{Status: model.DisplayExpiring},
		{Status: model.DisplayExpired},
	}
	missing := []model.DocumentPreset{{DocumentName: "A"}, {DocumentName: "B"}}

	assert.Equal(t, Metrics{
		Total:    6,
		Verified: 2,
		Pending:  1,
		Review:   1,
		Expiring: 1,
		Expired:  1,
		Required: 2,
	}, Tally(classified, missing))
}

func TestMetrics_Count(t *testing.T) {
	m := Metrics{Total: 5, Verified: 2, Pending: 1, Review: 1, Expiring: 1, Required: 3}

	got := map[model.DisplayStatus]int{}
	for _, s := range model.DisplayStatuses {
		got[s] = m.Count(s)
	}
	assert.Equal(t, map[model.DisplayStatus]int{
		model.DisplayVerified: 2,
		model.DisplayPending:  1,
		model.DisplayReview:   1,
		model.DisplayExpiring: 1,
		model.DisplayExpired:  0,
		model.DisplayRequired: 3,
	}, got)
	assert.Equal(t, 0, m.Count(model.DisplayStatus("archived")))
}
