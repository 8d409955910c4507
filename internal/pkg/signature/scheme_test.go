package signature

import (
	"strings"
	"testing"
)

func TestSignAppliesPrefix(t *testing.T) {
	s := Scheme{Header: "X-Signature", Prefix: "sha256="}
	sig := s.Sign([]byte("secret"), []byte(`{"status":"PAID"}`))
	if !strings.HasPrefix(sig, "sha256=") {
		t.Fatalf("expected provider prefix, got %q", sig)
	}
}

func TestVerifyAcceptsOwnSignature(t *testing.T) {
	s := Scheme{Header: "X-Signature", Prefix: "sha256="}
	payload := []byte(`{"external_reference":"ord-1","status":"PAID"}`)
	sig := s.Sign([]byte("secret"), payload)

	if !s.Verify([]byte("secret"), payload, sig) {
		t.Fatalf("expected signature to verify")
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	s := Scheme{Header: "X-Signature"}
	sig := s.Sign([]byte("secret"), []byte(`{"amount":1}`))

	if s.Verify([]byte("secret"), []byte(`{"amount":100}`), sig) {
		t.Fatalf("expected tampered payload to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	s := Scheme{Header: "X-Signature"}
	payload := []byte(`{"status":"PAID"}`)
	sig := s.Sign([]byte("secret"), payload)

	if s.Verify([]byte("other"), payload, sig) {
		t.Fatalf("expected wrong secret to fail verification")
	}
}

func TestVerifyRejectsEmptyHeader(t *testing.T) {
	s := Scheme{Header: "X-Signature"}
	if s.Verify([]byte("secret"), []byte(`{}`), "") {
		t.Fatalf("expected empty header to fail verification")
	}
}
