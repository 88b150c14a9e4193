package biz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/model"
	complianceopts "github.com/unlistededge/voicegate/pkg/options/compliance"
)

// fixedClock returns a clock pinned to the given IST wall time.
func fixedClock(t *testing.T, hour, minute int) func() time.Time {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return func() time.Time {
		return time.Date(2026, 3, 10, hour, minute, 0, 0, loc)
	}
}

func newGate(t *testing.T, dnc *store.DNCList) *biz.Gate {
	t.Helper()

	g, err := biz.NewGate(complianceopts.NewOptions(), dnc)
	require.NoError(t, err)
	return g
}

func TestGate_AllChecksPassed(t *testing.T) {
	g := newGate(t, nil).WithClock(fixedClock(t, 12, 0))

	d := g.Evaluate(biz.CallContext{Phone: "+919876543210", Text: "tell me about pricing"})

	assert.True(t, d.Continue())
	assert.True(t, d.Safe)
	assert.Equal(t, model.ReasonAllChecksPassed, d.Reason)
	assert.Empty(t, d.Response)
}

func TestGate_OutsideCallingHours(t *testing.T) {
	g := newGate(t, nil).WithClock(fixedClock(t, 21, 30))

	d := g.Evaluate(biz.CallContext{Phone: "+919876543210"})

	assert.Equal(t, model.ActionEndCall, d.Action)
	assert.False(t, d.Safe)
	assert.Equal(t, model.ReasonOutsideCallingHours, d.Reason)
	assert.Contains(t, d.Response, "business hours")
}

func TestGate_CallingHoursBoundariesInclusive(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		within bool
	}{
		{"just before open", 8, 59, false},
		{"opening minute", 9, 0, true},
		{"closing minute", 19, 0, true},
		{"just after close", 19, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGate(t, nil).WithClock(fixedClock(t, tc.hour, tc.minute))
			assert.Equal(t, tc.within, g.WithinCallingHours())
		})
	}
}

func TestGate_DNCBlocks(t *testing.T) {
	dnc, err := store.NewDNCList("")
	require.NoError(t, err)
	defer dnc.Close()
	dnc.Add("+919876543210")

	g := newGate(t, dnc).WithClock(fixedClock(t, 12, 0))

	d := g.Evaluate(biz.CallContext{Phone: "+91 98765 43210"})

	assert.Equal(t, model.ActionEndCall, d.Action)
	assert.Equal(t, model.ReasonDNCList, d.Reason)
	assert.Contains(t, d.Response, "remove your number")
}

func TestGate_ProfanityEndsPolitely(t *testing.T) {
	g := newGate(t, nil).WithClock(fixedClock(t, 12, 0))

	d := g.Evaluate(biz.CallContext{Phone: "+919876543210", Text: "this is complete SHIT"})

	assert.Equal(t, model.ActionEndPolitely, d.Action)
	assert.False(t, d.Safe)
	assert.Equal(t, model.ReasonProfanityDetected, d.Reason)
	assert.Contains(t, d.Response, "upset")
}

func TestGate_HoursCheckedBeforeDNC(t *testing.T) {
	dnc, err := store.NewDNCList("")
	require.NoError(t, err)
	defer dnc.Close()
	dnc.Add("+919876543210")

	g := newGate(t, dnc).WithClock(fixedClock(t, 22, 0))

	d := g.Evaluate(biz.CallContext{Phone: "+919876543210", Text: "damn"})

	assert.Equal(t, model.ReasonOutsideCallingHours, d.Reason)
}

func TestGate_ProfanityFilterDisabled(t *testing.T) {
	opts := complianceopts.NewOptions()
	opts.ProfanityFilterEnabled = false
	g, err := biz.NewGate(opts, nil)
	require.NoError(t, err)
	g.WithClock(fixedClock(t, 12, 0))

	d := g.Evaluate(biz.CallContext{Text: "damn it"})

	assert.True(t, d.Continue())
}

func TestGate_FailsOpenOnPanic(t *testing.T) {
	g := newGate(t, nil).WithClock(func() time.Time {
		panic("clock failure")
	})

	d := g.Evaluate(biz.CallContext{Phone: "+919876543210"})

	assert.True(t, d.Continue())
	assert.True(t, d.Safe)
	assert.Equal(t, model.ReasonCheckFailed, d.Reason)
}
