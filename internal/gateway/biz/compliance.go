// Package biz holds the gateway's business logic.
package biz

import (
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/model"
	complianceopts "github.com/unlistededge/voicegate/pkg/options/compliance"
)

// Conversation responses used when a check blocks the call.
const (
	responseOutsideHours = "I apologize, but we're calling outside our business hours. We'll call you back between 9 AM and 7 PM IST. Thank you."
	responseDNC          = "I see you've requested not to be contacted. We'll remove your number. Apologies for the inconvenience."
	responseProfanity    = "I understand you're upset. If you'd prefer not to continue, that's completely fine. Have a good day."
)

// CallContext carries the inputs for one compliance evaluation.
type CallContext struct {
	Phone string
	Text  string
}

// Gate evaluates compliance rules before and during calls: calling hours,
// the do-not-call registry, then the profanity filter, in that order.
type Gate struct {
	opts     *complianceopts.Options
	dnc      *store.DNCList
	location *time.Location
	startMin int
	endMin   int
	// now is swappable for tests.
	now func() time.Time
}

// NewGate creates a compliance gate. The options must already be validated.
func NewGate(opts *complianceopts.Options, dnc *store.DNCList) (*Gate, error) {
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, err
	}

	startMin, err := complianceopts.ParseClock(opts.CallingHoursStart)
	if err != nil {
		return nil, err
	}
	endMin, err := complianceopts.ParseClock(opts.CallingHoursEnd)
	if err != nil {
		return nil, err
	}

	return &Gate{
		opts:     opts,
		dnc:      dnc,
		location: loc,
		startMin: startMin,
		endMin:   endMin,
		now:      time.Now,
	}, nil
}

// WithClock overrides the gate's clock. Intended for tests.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// CallingWindow returns the configured window as "HH:MM" strings.
func (g *Gate) CallingWindow() (start, end string) {
	return g.opts.CallingHoursStart, g.opts.CallingHoursEnd
}

// WithinCallingHours reports whether the current local time falls inside
// the configured window, boundaries included.
func (g *Gate) WithinCallingHours() bool {
	t := g.now().In(g.location)
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= g.startMin && minutes <= g.endMin
}

// Evaluate runs the compliance checks in order and returns the first
// blocking decision. A panic in any check fails open: the call continues.
func (g *Gate) Evaluate(call CallContext) (decision model.ComplianceDecision) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("Compliance check panicked, allowing call", "panic", r)
			decision = model.ComplianceDecision{
				Action: model.ActionContinue,
				Safe:   true,
				Reason: model.ReasonCheckFailed,
			}
		}
	}()

	if !g.WithinCallingHours() {
		return model.ComplianceDecision{
			Action:   model.ActionEndCall,
			Safe:     false,
			Reason:   model.ReasonOutsideCallingHours,
			Response: responseOutsideHours,
		}
	}

	if call.Phone != "" && g.dnc != nil && g.dnc.Contains(call.Phone) {
		return model.ComplianceDecision{
			Action:   model.ActionEndCall,
			Safe:     false,
			Reason:   model.ReasonDNCList,
			Response: responseDNC,
		}
	}

	if g.opts.ProfanityFilterEnabled && containsProfanity(call.Text, g.opts.ProfanityWords) {
		return model.ComplianceDecision{
			Action:   model.ActionEndPolitely,
			Safe:     false,
			Reason:   model.ReasonProfanityDetected,
			Response: responseProfanity,
		}
	}

	return model.ComplianceDecision{
		Action: model.ActionContinue,
		Safe:   true,
		Reason: model.ReasonAllChecksPassed,
	}
}

func containsProfanity(text string, words []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
