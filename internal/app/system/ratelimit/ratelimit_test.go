package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowWithinWindow(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d blocked below the limit", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("attempt above the limit allowed")
	}
	// A different key has its own window.
	if !l.Allow("10.0.0.2") {
		t.Error("unrelated key blocked")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("10.0.0.1")
	if l.Allow("10.0.0.1") {
		t.Fatal("second attempt allowed at limit 1")
	}
	l.Reset("10.0.0.1")
	if !l.Allow("10.0.0.1") {
		t.Error("attempt blocked after Reset")
	}
}

func TestLoginLimiter_BlocksRepeatedLogin(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.1:5000"

	for i := 0; i < 2; i++ {
		if ok, reason := ll.Check(req, "staff"); !ok {
			t.Fatalf("attempt %d blocked: %s", i+1, reason)
		}
	}
	if ok, _ := ll.Check(req, "staff"); ok {
		t.Error("third attempt for the same login allowed")
	}

	ll.ResetLogin("staff")
	if ok, _ := ll.Check(req, "staff"); !ok {
		t.Error("attempt blocked after ResetLogin")
	}
}

func TestClientIP_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := ClientIP(req); got != "203.0.113.9" {
		t.Errorf("ClientIP = %q, want first forwarded address", got)
	}
}
