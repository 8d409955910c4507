package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Scheme describes how one provider signs its webhook payloads: which header
// carries the signature and which prefix, if any, the provider prepends to the
// hex-encoded HMAC-SHA256 digest.
type Scheme struct {
	Header string
	Prefix string
}

// Sign computes the provider-formatted signature over the raw payload.
func (s Scheme) Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return s.Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the supplied header value against the expected signature.
// The comparison is constant time.
func (s Scheme) Verify(secret, payload []byte, header string) bool {
	if header == "" {
		return false
	}
	expected := s.Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(header))
}
