package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unlistededge/voicegate/internal/gateway/biz"
	"github.com/unlistededge/voicegate/internal/gateway/handler"
	"github.com/unlistededge/voicegate/internal/gateway/router"
	"github.com/unlistededge/voicegate/internal/gateway/store"
	"github.com/unlistededge/voicegate/internal/model"
	"github.com/unlistededge/voicegate/internal/pkg/signature"
	"github.com/unlistededge/voicegate/pkg/component/bolna"
	complianceopts "github.com/unlistededge/voicegate/pkg/options/compliance"
	knowledgeopts "github.com/unlistededge/voicegate/pkg/options/knowledge"
)

// fakeForwarder records forwarded payloads.
type fakeForwarder struct {
	callEnded []interface{}
	leads     []interface{}
	err       error
}

func (f *fakeForwarder) CallEnded(_ context.Context, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.callEnded = append(f.callEnded, payload)
	return nil
}

func (f *fakeForwarder) LeadSaved(_ context.Context, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.leads = append(f.leads, payload)
	return nil
}

func (f *fakeForwarder) CallEndedConfigured() bool { return true }
func (f *fakeForwarder) LeadSavedConfigured() bool { return true }

// fakeCaller simulates the voice platform.
type fakeCaller struct {
	configured bool
	created    []string
	err        error
}

func (f *fakeCaller) CreateCall(_ context.Context, phone, _ string, _ map[string]interface{}) (*bolna.CallResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, phone)
	return &bolna.CallResult{CallID: "call-123", Status: "queued"}, nil
}

func (f *fakeCaller) GetCallStatus(_ context.Context, callID string) (*bolna.CallStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &bolna.CallStatus{CallID: callID, Status: "completed", DurationSeconds: 42}, nil
}

func (f *fakeCaller) Configured() bool { return f.configured }

// fakeEmbedder returns a fixed vector for any query.
type fakeEmbedder struct{}

func (fakeEmbedder) EmbedSingle(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

// fakeDeduper remembers call_id+event pairs for the test's lifetime.
type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (d *fakeDeduper) Seen(_ context.Context, callID, event string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	key := callID + ":" + event
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

func (d *fakeDeduper) Close() error { return nil }

// memLeadStore records saved leads in memory.
type memLeadStore struct {
	saved []*model.LeadRecord
	err   error
}

func (s *memLeadStore) Save(_ context.Context, lead *model.LeadRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, lead)
	return nil
}

func (s *memLeadStore) Close(_ context.Context) error { return nil }

func withinHoursGate(t *testing.T) *biz.Gate {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	g, err := biz.NewGate(complianceopts.NewOptions(), nil)
	require.NoError(t, err)
	return g.WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, loc)
	})
}

func newFixture(t *testing.T, secret string) (*handler.Handler, *fakeForwarder, *fakeCaller, *memLeadStore) {
	t.Helper()

	vs := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, vs.CreateCollection(ctx, &store.CollectionConfig{Name: "kb", Dimension: 3}))
	require.NoError(t, vs.Upsert(ctx, "kb", []*store.KnowledgeChunk{
		{ID: "pricing", Text: "Our pricing: 2% transaction fee.", Metadata: map[string]string{"category": "pricing"}, Embedding: []float32{1, 0, 0}},
		{ID: "safety", Text: "Shares stay in your demat account.", Metadata: map[string]string{"category": "safety"}, Embedding: []float32{0, 1, 0}},
	}))

	kopts := knowledgeopts.NewOptions()
	kopts.Collection = "kb"

	forwarder := &fakeForwarder{}
	caller := &fakeCaller{configured: true}
	leads := &memLeadStore{}

	h := handler.New(&handler.Config{
		Verifier:           signature.NewVerifier(secret),
		Gate:               withinHoursGate(t),
		Retriever:          biz.NewRetriever(fakeEmbedder{}, vs, kopts),
		Leads:              leads,
		Forwarder:          forwarder,
		Caller:             caller,
		EmbedderConfigured: true,
		KnowledgeReady:     true,
	})
	return h, forwarder, caller, leads
}

func doJSON(t *testing.T, h *handler.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.Register(h, []string{"*"}).ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])

	services := body["services"].(map[string]interface{})
	assert.Equal(t, true, services["bolna_configured"])
	assert.Equal(t, true, services["knowledge_configured"])

	hours := body["calling_hours"].(map[string]interface{})
	assert.Equal(t, "09:00", hours["start"])
	assert.Equal(t, "19:00", hours["end"])
	assert.Equal(t, true, hours["currently_allowed"])
}

func TestCallStarted_AcceptsValidSignature(t *testing.T) {
	h, _, _, _ := newFixture(t, "secret")
	payload := []byte(`{"call_id":"c-1","customer_number":"+919876543210"}`)
	sig := signature.NewVerifier("secret").Sign(payload)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/bolna/call-started", bytes.NewReader(payload))
	req.Header.Set(signature.DefaultHeader, sig)
	w := httptest.NewRecorder()
	router.Register(h, []string{"*"}).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "received", body["status"])
	assert.Equal(t, "c-1", body["call_id"])
}

func TestCallStarted_RejectsBadSignature(t *testing.T) {
	h, _, _, _ := newFixture(t, "secret")

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-started",
		map[string]interface{}{"call_id": "c-1"},
		map[string]string{signature.DefaultHeader: "deadbeef"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCallStarted_PermissiveWithoutSecret(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-started",
		map[string]interface{}{"call_id": "c-1"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCallEnded_ForwardsDownstream(t *testing.T) {
	h, forwarder, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-ended", map[string]interface{}{
		"call_id":         "c-2",
		"customer_number": "+919876543210",
		"duration":        95,
		"status":          "completed",
		"transcript":      "hello there",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "processed", body["status"])

	require.Len(t, forwarder.callEnded, 1)
	event := forwarder.callEnded[0].(model.CallEndedEvent)
	assert.Equal(t, "c-2", event.CallID)
	assert.Equal(t, 95, event.DurationSeconds)
	assert.Equal(t, "completed", event.Status)
	assert.NotNil(t, event.CollectedData)
}

func TestCallEnded_ForwardFailure(t *testing.T) {
	h, forwarder, _, _ := newFixture(t, "")
	forwarder.err = errors.New("downstream unavailable")

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-ended",
		map[string]interface{}{"call_id": "c-3"}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCallEnded_DuplicateAcknowledgedWithoutReforward(t *testing.T) {
	forwarder := &fakeForwarder{}
	h := handler.New(&handler.Config{
		Verifier:  signature.NewVerifier(""),
		Deduper:   &fakeDeduper{},
		Forwarder: forwarder,
	})
	payload := map[string]interface{}{
		"call_id":         "c-7",
		"customer_number": "+919876543210",
		"status":          "completed",
	}

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-ended", payload, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "processed", decodeBody(t, w)["status"])
	require.Len(t, forwarder.callEnded, 1)

	w = doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-ended", payload, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "duplicate", body["status"])
	assert.Equal(t, "c-7", body["call_id"])
	assert.Len(t, forwarder.callEnded, 1)
}

func TestCallEnded_DedupFailureTreatedAsFirstDelivery(t *testing.T) {
	forwarder := &fakeForwarder{}
	h := handler.New(&handler.Config{
		Verifier:  signature.NewVerifier(""),
		Deduper:   &fakeDeduper{err: errors.New("redis down")},
		Forwarder: forwarder,
	})

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/call-ended",
		map[string]interface{}{"call_id": "c-8"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "processed", decodeBody(t, w)["status"])
	require.Len(t, forwarder.callEnded, 1)
}

func TestTranscript(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/transcript",
		map[string]interface{}{"call_id": "c-4", "text": "customer asking about fees"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "received", decodeBody(t, w)["status"])
}

func TestTranscript_LongMultibyteText(t *testing.T) {
	h, _, _, _ := newFixture(t, "")
	text := strings.Repeat("नमस्ते ", 40)

	w := doJSON(t, h, http.MethodPost, "/webhooks/bolna/transcript",
		map[string]interface{}{"call_id": "c-4", "text": text}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "received", decodeBody(t, w)["status"])
}

func TestSaveLeadData(t *testing.T) {
	h, forwarder, _, leads := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/save-lead-data", map[string]interface{}{
		"call_id": "c-5",
		"parameters": map[string]interface{}{
			"name":           "Priya Sharma",
			"phone":          "+919876543210",
			"interest_level": "high",
			"budget":         500000,
			"sectors":        []string{"fintech"},
		},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["result"], "noted all your details")
	assert.Equal(t, "saved", body["status"])
	assert.Equal(t, "c-5", body["lead_id"])

	require.Len(t, leads.saved, 1)
	assert.Equal(t, "Priya Sharma", leads.saved[0].Name)
	assert.Equal(t, model.InterestHigh, leads.saved[0].InterestLevel)
	require.Len(t, forwarder.leads, 1)
}

func TestSaveLeadData_ArchiveFailureFallsBack(t *testing.T) {
	h, _, _, leads := newFixture(t, "")
	leads.err = errors.New("archive down")

	w := doJSON(t, h, http.MethodPost, "/functions/save-lead-data", map[string]interface{}{
		"call_id":    "c-6",
		"parameters": map[string]interface{}{"name": "X"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w)["result"], "noted your interest")
}

func TestCheckCompliance_Continue(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/check-compliance", map[string]interface{}{
		"parameters": map[string]interface{}{"phone": "+919876543210", "text": "tell me more"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "continue", body["action"])
	assert.Equal(t, true, body["safe"])
	assert.Equal(t, "all_checks_passed", body["reason"])
}

func TestCheckCompliance_Profanity(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/check-compliance", map[string]interface{}{
		"parameters": map[string]interface{}{"text": "this is shit"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "end_politely", body["action"])
	assert.Equal(t, false, body["safe"])
	assert.Equal(t, "profanity_detected", body["reason"])
	assert.NotEmpty(t, body["response"])
}

func TestSearchKnowledge(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/search-knowledge",
		map[string]interface{}{"query": "what are your fees"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["result"], "2% transaction fee")
	assert.Greater(t, body["confidence"].(float64), 0.75)
}

func TestSearchKnowledge_QueryFromParameters(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/search-knowledge", map[string]interface{}{
		"parameters": map[string]interface{}{"query": "what are your fees"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeBody(t, w)["result"], "2% transaction fee")
}

func TestSearchKnowledge_MissingQuery(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/functions/search-knowledge",
		map[string]interface{}{}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "No query provided", body["error"])
	assert.Contains(t, body["result"], "specific question")
}

func TestCreateCall(t *testing.T) {
	h, _, caller, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/calls",
		map[string]interface{}{"phone": "+919876543210", "name": "Priya"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "call-123", body["call_id"])
	assert.Equal(t, []string{"+919876543210"}, caller.created)
}

func TestCreateCall_MissingPhone(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/calls", map[string]interface{}{}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCall_BlockedOutsideHours(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	caller := &fakeCaller{configured: true}

	vs := store.NewMemoryStore()
	require.NoError(t, vs.CreateCollection(context.Background(), &store.CollectionConfig{Name: "kb", Dimension: 3}))
	kopts := knowledgeopts.NewOptions()
	kopts.Collection = "kb"

	g, err := biz.NewGate(complianceopts.NewOptions(), nil)
	require.NoError(t, err)
	g.WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 22, 0, 0, 0, loc)
	})

	h := handler.New(&handler.Config{
		Verifier:  signature.NewVerifier(""),
		Gate:      g,
		Retriever: biz.NewRetriever(fakeEmbedder{}, vs, kopts),
		Caller:    caller,
	})

	w := doJSON(t, h, http.MethodPost, "/calls",
		map[string]interface{}{"phone": "+919876543210"}, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "outside_calling_hours", decodeBody(t, w)["reason"])
	assert.Empty(t, caller.created)
}

func TestGetCall(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodGet, "/calls/call-123", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "call-123", body["call_id"])
	assert.Equal(t, "completed", body["status"])
}

func TestTestWebhook(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodPost, "/test/webhook",
		map[string]interface{}{"hello": "world"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "received", body["status"])
	assert.Equal(t, "world", body["data"].(map[string]interface{})["hello"])
}

func TestTestSearch(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodGet, "/test/search?query=fees", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "fees", body["query"])
	assert.Equal(t, float64(2), body["count"])
}

func TestTestSearch_MissingQuery(t *testing.T) {
	h, _, _, _ := newFixture(t, "")

	w := doJSON(t, h, http.MethodGet, "/test/search", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
