package biz

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/unlistededge/voicegate/internal/model"
)

// Acknowledgements spoken back to the customer after a lead capture.
const (
	leadSavedResult    = "Thank you! I've noted all your details. Our investment advisor will contact you within 24 hours."
	leadFallbackResult = "I've noted your interest. We'll follow up with you soon."
)

// LeadSavedResult returns the acknowledgement for a saved lead.
func LeadSavedResult() string {
	return leadSavedResult
}

// LeadFallbackResult returns the acknowledgement used when saving failed.
func LeadFallbackResult() string {
	return leadFallbackResult
}

// NormalizeLead converts the loosely-typed parameters collected by the
// voice agent into a LeadRecord. Missing fields default to zero values;
// budget accepts both numbers and numeric strings.
func NormalizeLead(callID string, params map[string]interface{}, now time.Time) *model.LeadRecord {
	lead := &model.LeadRecord{
		Name:             stringParam(params, "name"),
		Phone:            stringParam(params, "phone"),
		Email:            stringParam(params, "email"),
		InterestLevel:    model.ParseInterestLevel(stringParam(params, "interest_level")),
		Budget:           floatParam(params, "budget"),
		PreferredSectors: stringSliceParam(params, "sectors"),
		Questions:        stringSliceParam(params, "questions"),
		CallID:           callID,
		Timestamp:        now,
	}
	return lead
}

func stringParam(params map[string]interface{}, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func floatParam(params map[string]interface{}, key string) *float64 {
	v, ok := params[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

func stringSliceParam(params map[string]interface{}, key string) []string {
	v, ok := params[key]
	if !ok || v == nil {
		return []string{}
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if vals == "" {
			return []string{}
		}
		parts := strings.Split(vals, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return []string{}
}
