// internal/app/system/auth/auth_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func initTestStore(t *testing.T) {
	t.Helper()
	prev := Store
	t.Cleanup(func() { Store = prev })
	if err := InitSessionStore("0123456789abcdef0123456789abcdef", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore: %v", err)
	}
}

func TestVerifyStaff(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	cases := []struct {
		name            string
		login, password string
		want            bool
	}{
		{"correct", "staff", "s3cret", true},
		{"wrong password", "staff", "guess", false},
		{"wrong login", "admin", "s3cret", false},
		{"both wrong", "admin", "guess", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifyStaff(tc.login, tc.password, "staff", string(hash)); got != tc.want {
				t.Errorf("VerifyStaff = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRequireSignedIn_Unauthorized(t *testing.T) {
	initTestStore(t)

	h := LoadSessionUser(RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ingest", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestSignInThenRequireSignedIn(t *testing.T) {
	initTestStore(t)

	// Sign in and capture the session cookie.
	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := SignIn(loginRec, loginReq, "staff"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	var seen *SessionUser
	h := LoadSessionUser(RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if seen == nil || seen.Login != "staff" {
		t.Errorf("CurrentUser = %+v, want login staff", seen)
	}
}

func TestSignOutInvalidatesSession(t *testing.T) {
	initTestStore(t)

	loginRec := httptest.NewRecorder()
	if err := SignIn(loginRec, httptest.NewRequest(http.MethodPost, "/login", nil), "staff"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := loginRec.Result().Cookies()

	outReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range cookies {
		outReq.AddCookie(c)
	}
	outRec := httptest.NewRecorder()
	if err := SignOut(outRec, outReq); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	// The replacement cookie must be expired.
	expired := false
	for _, c := range outRec.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("SignOut did not expire the session cookie")
	}
}

func TestInitSessionStore_EmptyKeyFallsBack(t *testing.T) {
	prev := Store
	t.Cleanup(func() { Store = prev })

	if err := InitSessionStore("", "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore with empty key: %v", err)
	}
	if Store == nil {
		t.Fatal("Store not initialized")
	}
}
