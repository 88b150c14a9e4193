package biz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/model"
)

func TestNormalizeLead_FullParameters(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	lead := biz.NormalizeLead("call-1", map[string]interface{}{
		"name":           "Priya Sharma",
		"phone":          "+919876543210",
		"email":          "priya@example.com",
		"interest_level": "High",
		"budget":         float64(500000),
		"sectors":        []interface{}{"fintech", "healthcare"},
		"questions":      []interface{}{"What are the fees?"},
	}, now)

	assert.Equal(t, "Priya Sharma", lead.Name)
	assert.Equal(t, "+919876543210", lead.Phone)
	assert.Equal(t, "priya@example.com", lead.Email)
	assert.Equal(t, model.InterestHigh, lead.InterestLevel)
	require.NotNil(t, lead.Budget)
	assert.Equal(t, float64(500000), *lead.Budget)
	assert.Equal(t, []string{"fintech", "healthcare"}, lead.PreferredSectors)
	assert.Equal(t, []string{"What are the fees?"}, lead.Questions)
	assert.Equal(t, "call-1", lead.CallID)
	assert.Equal(t, now, lead.Timestamp)
}

func TestNormalizeLead_MissingParameters(t *testing.T) {
	lead := biz.NormalizeLead("call-2", map[string]interface{}{}, time.Now())

	assert.Empty(t, lead.Name)
	assert.Equal(t, model.InterestUnknown, lead.InterestLevel)
	assert.Nil(t, lead.Budget)
	assert.Empty(t, lead.PreferredSectors)
	assert.Empty(t, lead.Questions)
}

func TestNormalizeLead_BudgetFromString(t *testing.T) {
	lead := biz.NormalizeLead("call-3", map[string]interface{}{
		"budget": "250000",
	}, time.Now())

	require.NotNil(t, lead.Budget)
	assert.Equal(t, float64(250000), *lead.Budget)
}

func TestNormalizeLead_BadBudgetIgnored(t *testing.T) {
	lead := biz.NormalizeLead("call-4", map[string]interface{}{
		"budget": "five lakhs",
	}, time.Now())

	assert.Nil(t, lead.Budget)
}

func TestNormalizeLead_SectorsFromCommaString(t *testing.T) {
	lead := biz.NormalizeLead("call-5", map[string]interface{}{
		"sectors": "fintech, healthcare , ",
	}, time.Now())

	assert.Equal(t, []string{"fintech", "healthcare"}, lead.PreferredSectors)
}

func TestParseInterestLevel(t *testing.T) {
	assert.Equal(t, model.InterestHigh, model.ParseInterestLevel(" HIGH "))
	assert.Equal(t, model.InterestMedium, model.ParseInterestLevel("med"))
	assert.Equal(t, model.InterestLow, model.ParseInterestLevel("low"))
	assert.Equal(t, model.InterestUnknown, model.ParseInterestLevel("maybe"))
	assert.Equal(t, model.InterestUnknown, model.ParseInterestLevel(""))
}
