// Package model defines the domain types shared across the gateway.
package model

import (
	"strings"
	"time"
)

// Compliance actions returned to the voice agent.
const (
	ActionContinue    = "continue"
	ActionEndCall     = "end_call"
	ActionEndPolitely = "end_politely"
)

// Compliance reasons attached to a decision.
const (
	ReasonAllChecksPassed     = "all_checks_passed"
	ReasonOutsideCallingHours = "outside_calling_hours"
	ReasonDNCList             = "dnc_list"
	ReasonProfanityDetected   = "profanity_detected"
	ReasonCheckFailed         = "check_failed"
)

// ComplianceDecision is the verdict of the compliance gate for a call turn.
type ComplianceDecision struct {
	Action   string `json:"action"`
	Safe     bool   `json:"safe"`
	Reason   string `json:"reason"`
	Response string `json:"response,omitempty"`
}

// Continue reports whether the call may keep going.
func (d ComplianceDecision) Continue() bool {
	return d.Action == ActionContinue
}

// InterestLevel classifies how warm a lead is.
type InterestLevel string

const (
	InterestUnknown InterestLevel = "unknown"
	InterestLow     InterestLevel = "low"
	InterestMedium  InterestLevel = "medium"
	InterestHigh    InterestLevel = "high"
)

// ParseInterestLevel normalizes free-form agent output into a known level.
// Unrecognized values map to InterestUnknown.
func ParseInterestLevel(s string) InterestLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return InterestLow
	case "medium", "med":
		return InterestMedium
	case "high":
		return InterestHigh
	default:
		return InterestUnknown
	}
}

// LeadRecord is the normalized lead captured during a call.
type LeadRecord struct {
	Name             string        `json:"name" bson:"name"`
	Phone            string        `json:"phone" bson:"phone"`
	Email            string        `json:"email" bson:"email"`
	InterestLevel    InterestLevel `json:"interest_level" bson:"interest_level"`
	Budget           *float64      `json:"budget,omitempty" bson:"budget,omitempty"`
	PreferredSectors []string      `json:"preferred_sectors" bson:"preferred_sectors"`
	Questions        []string      `json:"questions" bson:"questions"`
	CallID           string        `json:"call_id" bson:"call_id"`
	Timestamp        time.Time     `json:"timestamp" bson:"timestamp"`
}

// Answer is a composed reply from the knowledge base.
type Answer struct {
	Text        string  `json:"result"`
	Confidence  float32 `json:"confidence"`
	SourcesUsed int     `json:"sources_used"`
}

// CallEndedEvent is the payload forwarded downstream when a call completes.
type CallEndedEvent struct {
	CallID          string                 `json:"call_id"`
	CustomerNumber  string                 `json:"customer_number"`
	DurationSeconds int                    `json:"duration_seconds"`
	Status          string                 `json:"status"`
	Transcript      string                 `json:"transcript"`
	RecordingURL    string                 `json:"recording_url"`
	CollectedData   map[string]interface{} `json:"collected_data"`
	Timestamp       time.Time              `json:"timestamp"`
}
