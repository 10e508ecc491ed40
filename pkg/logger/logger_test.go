package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", "u1", "password", "hunter22", "Authorization", "Bearer x", "dangling"})

	want := []interface{}{"user_id", "u1", "password", "[REDACTED]", "Authorization", "[REDACTED]", "dangling"}
	if len(out) != len(want) {
		t.Fatalf("expected %d items, got %d (%v)", len(want), len(out), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("item %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestNewBuildsForEveryMode(t *testing.T) {
	for _, mode := range []string{"production", "development", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("mode %q: unexpected error %v", mode, err)
		}
		l.With("component", "test").Info("ok", "api_key", "abc")
	}
}
