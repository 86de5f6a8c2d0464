package authclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeBackend imitates the OTP/auth backend with rotating refresh tokens.
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server
	key []byte

	mu      sync.Mutex
	access  map[string]bool
	refresh map[string]bool

	refreshCalls   atomic.Int32
	meCalls        atomic.Int32
	logoutCalls    atomic.Int32
	refreshStatus  int
	logoutStatus   int
	refreshDelay   time.Duration
	lastConsulting ConsultingSubmission
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		t:       t,
		key:     []byte("fake-backend-key"),
		access:  map[string]bool{},
		refresh: map[string]bool{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeBackend) client() *Client {
	f.t.Helper()
	transport := &http.Transport{}
	f.t.Cleanup(transport.CloseIdleConnections)
	c, err := New(Config{BaseURL: f.srv.URL, HTTPClient: &http.Client{Transport: transport, Timeout: 5 * time.Second}})
	require.NoError(f.t, err)
	return c
}

func (f *fakeBackend) mint(ttl time.Duration) string {
	f.t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.key)
	require.NoError(f.t, err)
	return token
}

// issue creates a session the backend will accept
func (f *fakeBackend) issue(ttl time.Duration) Tokens {
	access := f.mint(ttl)
	refresh := uuid.NewString()
	f.mu.Lock()
	f.access[access] = true
	f.refresh[refresh] = true
	f.mu.Unlock()
	return Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &User{ID: "user-1", Email: "sara@example.com", FullName: "Sara Ali"},
	}
}

func (f *fakeBackend) revokeAccess(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.access, token)
}

func (f *fakeBackend) revokeRefresh(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refresh, token)
}

func (f *fakeBackend) accessValid(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access[token]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "INVALID_CREDENTIALS", "message": "wrong email or password"})
			return
		}
		writeJSON(w, http.StatusOK, f.issue(5*time.Minute))

	case "/auth/otp/request":
		var req OTPRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Email, "@") {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"message": "invalid input",
				"errors":  []map[string]string{{"field": "email", "message": "invalid email"}},
			})
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "/auth/otp/verify":
		var req VerifyOTPRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Code != "123456" {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error": map[string]interface{}{"code": "OTP_INVALID", "message": "code is invalid", "fields": map[string]string{"code": "invalid code"}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": f.issue(5 * time.Minute)})

	case "/auth/refresh":
		f.refreshCalls.Add(1)
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if f.refreshStatus != 0 {
			writeJSON(w, f.refreshStatus, map[string]string{"code": "REFRESH_UNAVAILABLE", "message": "try later"})
			return
		}
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		ok := f.refresh[body.RefreshToken]
		delete(f.refresh, body.RefreshToken)
		f.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "REFRESH_INVALID", "message": "refresh token rejected"})
			return
		}
		tokens := f.issue(5 * time.Minute)
		tokens.User = nil
		writeJSON(w, http.StatusOK, tokens)

	case "/auth/me":
		f.meCalls.Add(1)
		if !f.accessValid(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "TOKEN_REVOKED", "message": "access token rejected"})
			return
		}
		writeJSON(w, http.StatusOK, User{ID: "user-1", Email: "sara@example.com", FullName: "Sara Ali"})

	case "/auth/logout":
		f.logoutCalls.Add(1)
		if f.logoutStatus != 0 {
			w.WriteHeader(f.logoutStatus)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case "/consulting-requests":
		var req ConsultingSubmission
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastConsulting = req
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "" && !f.accessValid(r) {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "forbidden"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": ConsultingReceipt{ID: "ext-42"}})

	default:
		http.NotFound(w, r)
	}
}
