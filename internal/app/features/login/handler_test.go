package login_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/sallehub/internal/app/features/login"
	"github.com/dalemusser/sallehub/internal/app/system/auth"
	"github.com/dalemusser/sallehub/internal/app/system/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newHandler(t *testing.T) *login.Handler {
	t.Helper()
	if err := auth.InitSessionStore("0123456789abcdef0123456789abcdef", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return login.NewHandler("staff", string(hash), ratelimit.NewLoginLimiter(), zap.NewNop())
}

func post(h *login.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	h.Serve(rec, req)
	return rec
}

func TestServe_Success(t *testing.T) {
	h := newHandler(t)

	rec := post(h, `{"login":"staff","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("no session cookie set on successful login")
	}
}

func TestServe_WrongPassword(t *testing.T) {
	h := newHandler(t)

	rec := post(h, `{"login":"staff","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestServe_BadBody(t *testing.T) {
	h := newHandler(t)

	rec := post(h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServe_RateLimited(t *testing.T) {
	h := newHandler(t)
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(2, time.Minute, 100, time.Minute)

	post(h, `{"login":"staff","password":"nope"}`)
	post(h, `{"login":"staff","password":"nope"}`)
	rec := post(h, `{"login":"staff","password":"nope"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}
