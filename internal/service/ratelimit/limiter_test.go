package ratelimit

import "testing"

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		if !l.Allow("k", 5, 0) {
			t.Fatalf("call %d should be admitted within burst", i)
		}
	}
	if l.Allow("k", 5, 0) {
		t.Fatalf("burst exhausted, call should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first call on a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("a is exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("b has its own bucket")
	}
}
