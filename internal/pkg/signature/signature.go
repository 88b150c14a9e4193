// Package signature verifies webhook payload signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// DefaultHeader is the HTTP header carrying the webhook signature.
const DefaultHeader = "X-Bolna-Signature"

// Verifier checks HMAC-SHA256 signatures over raw webhook payloads.
// A Verifier with an empty secret accepts everything.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Sign computes the hex-encoded HMAC-SHA256 signature of payload.
func (v *Verifier) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is a valid signature for payload.
// Verification is permissive when no secret is configured.
func (v *Verifier) Verify(payload []byte, sig string) bool {
	if !v.Enabled() {
		return true
	}

	expected, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), expected)
}
