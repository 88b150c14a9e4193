package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unlistededge/voicegate/internal/pkg/signature"
)

func TestVerifier_SignAndVerify(t *testing.T) {
	v := signature.NewVerifier("test-secret")
	payload := []byte(`{"call_id":"abc123","status":"completed"}`)

	sig := v.Sign(payload)
	assert.NotEmpty(t, sig)
	assert.True(t, v.Verify(payload, sig))
}

func TestVerifier_RejectsWrongSignature(t *testing.T) {
	v := signature.NewVerifier("test-secret")
	payload := []byte(`{"call_id":"abc123"}`)

	assert.False(t, v.Verify(payload, "deadbeef"))
	assert.False(t, v.Verify(payload, "not-hex"))
}

func TestVerifier_RejectsTamperedPayload(t *testing.T) {
	v := signature.NewVerifier("test-secret")
	sig := v.Sign([]byte(`{"call_id":"abc123"}`))

	assert.False(t, v.Verify([]byte(`{"call_id":"abc124"}`), sig))
}

func TestVerifier_RejectsSignatureFromOtherSecret(t *testing.T) {
	payload := []byte(`{"call_id":"abc123"}`)
	sig := signature.NewVerifier("other-secret").Sign(payload)

	assert.False(t, signature.NewVerifier("test-secret").Verify(payload, sig))
}

func TestVerifier_PermissiveWithoutSecret(t *testing.T) {
	v := signature.NewVerifier("")

	assert.False(t, v.Enabled())
	assert.True(t, v.Verify([]byte(`{}`), "anything"))
	assert.True(t, v.Verify([]byte(`{}`), ""))
}
