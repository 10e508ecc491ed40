package memcache

import (
	"testing"
	"time"
)

func TestTTLStoreExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewTTLStore[string]()
	s.now = func() time.Time { return now }

	s.Set("a", "one", time.Minute)
	if v, ok := s.Get("a"); !ok || v != "one" {
		t.Fatalf("expected one, got %q (%v)", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get("a"); ok {
		t.Fatalf("expected entry to expire")
	}
	if removed := s.Sweep(); removed != 1 || s.Len() != 0 {
		t.Fatalf("expected sweep to remove 1, removed %d, left %d", removed, s.Len())
	}
}

func TestRevokedTokens(t *testing.T) {
	r := NewRevokedTokens()
	r.Revoke("jti-1", time.Now().Add(time.Hour))
	r.Revoke("jti-old", time.Now().Add(-time.Hour))

	if !r.IsRevoked("jti-1") {
		t.Fatalf("expected jti-1 to be revoked")
	}
	if r.IsRevoked("jti-old") || r.IsRevoked("other") {
		t.Fatalf("unexpected revocation")
	}
}
