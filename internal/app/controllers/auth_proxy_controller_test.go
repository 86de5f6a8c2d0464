package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/pkg/authclient"
)

func authProxyRouter(svc *mockAuthProxyService) http.Handler {
	ctrl := NewAuthProxyController(svc, zerolog.Nop())
	r := newTestRouter()
	g := r.Group("/api/auth")
	g.POST("/otp/request", ctrl.RequestOTP)
	g.POST("/otp/verify", ctrl.VerifyOTP)
	g.POST("/register", ctrl.Register)
	g.POST("/login", ctrl.Login)
	g.POST("/password/reset", ctrl.ResetPassword)
	g.POST("/refresh", ctrl.Refresh)
	g.POST("/logout", ctrl.Logout)
	g.GET("/me", ctrl.Me)
	g.GET("/sso", ctrl.SSO)
	return r
}

func TestAuthProxyController_Login(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("Login", mock.Anything, dto.UserLoginRequest{Email: "nora@example.com", Password: "secret-pass"}).
		Return(&authclient.Session{AccessToken: "a1", RefreshToken: "r1", User: &authclient.User{ID: "u1", Email: "nora@example.com"}}, nil)

	w := perform(authProxyRouter(svc), http.MethodPost, "/api/auth/login?lang=en",
		strings.NewReader(`{"email":"nora@example.com","password":"secret-pass"}`), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"accessToken":"a1"`)
	assert.Contains(t, w.Body.String(), `"refreshToken":"r1"`)
	assert.Contains(t, w.Body.String(), "Welcome back!")
}

func TestAuthProxyController_LoginRejected(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, &authclient.APIError{Status: http.StatusUnauthorized, Message: "bad password"})

	w := perform(authProxyRouter(svc), http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nora@example.com","password":"wrong"}`), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUTH_001"`)
}

func TestAuthProxyController_RegisterPassesUpstreamFieldErrors(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, &authclient.APIError{
		Status: http.StatusConflict,
		Fields: map[string]string{"email": "already registered"},
	})

	body := `{"fullName":"Nora Saleh","email":"nora@example.com","phone":"+966501112233","password":"long-enough","code":"123456"}`
	w := perform(authProxyRouter(svc), http.MethodPost, "/api/auth/register", strings.NewReader(body), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestAuthProxyController_VerifyOTPValidatesLocally(t *testing.T) {
	svc := new(mockAuthProxyService)

	w := perform(authProxyRouter(svc), http.MethodPost, "/api/auth/otp/verify",
		strings.NewReader(`{"email":"nora@example.com","code":"12ab","purpose":"login"}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"code"`)
	svc.AssertNotCalled(t, "VerifyOTP", mock.Anything, mock.Anything)
}

func TestAuthProxyController_NetworkFailure(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("RequestOTP", mock.Anything, dto.OTPRequest{Email: "nora@example.com", Purpose: "reset"}).Return(authclient.ErrNetwork)

	w := perform(authProxyRouter(svc), http.MethodPost, "/api/auth/otp/request",
		strings.NewReader(`{"email":"nora@example.com","purpose":"reset"}`), nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SRV_003"`)
}

func TestAuthProxyController_Me(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		svc := new(mockAuthProxyService)
		w := perform(authProxyRouter(svc), http.MethodGet, "/api/auth/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rotated", func(t *testing.T) {
		svc := new(mockAuthProxyService)
		svc.On("Me", mock.Anything, services.CallerTokens{AccessToken: "stale", RefreshToken: "r1"}).
			Return(&authclient.User{ID: "u1", Email: "nora@example.com"}, &services.CallerTokens{AccessToken: "fresh", RefreshToken: "r2"}, nil)

		w := perform(authProxyRouter(svc), http.MethodGet, "/api/auth/me", nil, map[string]string{
			"Authorization":   "Bearer stale",
			"X-Refresh-Token": "r1",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fresh", w.Header().Get("X-Access-Token"))
		assert.Equal(t, "r2", w.Header().Get("X-Refresh-Token"))
		assert.Contains(t, w.Body.String(), `"email":"nora@example.com"`)
	})

	t.Run("session rejected", func(t *testing.T) {
		svc := new(mockAuthProxyService)
		svc.On("Me", mock.Anything, mock.Anything).Return(nil, nil, &authclient.APIError{Status: http.StatusUnauthorized})

		w := perform(authProxyRouter(svc), http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer stale"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Header().Get("X-Access-Token"))
	})
}

func TestAuthProxyController_SSO(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("SSORedirect", mock.Anything, services.CallerTokens{AccessToken: "a1"}, "/courses/7").
		Return("https://learn.example.com/sso?redirect=%2Fcourses%2F7&token=a1", nil, nil)

	w := perform(authProxyRouter(svc), http.MethodGet, "/api/auth/sso?next=/courses/7", nil, map[string]string{"Authorization": "Bearer a1"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dto.SSOResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://learn.example.com/sso?redirect=%2Fcourses%2F7&token=a1", body.Data.RedirectURL)
}

func TestAuthProxyController_RefreshFromHeaderOrBody(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("Refresh", mock.Anything, "r-header").Return(&authclient.Session{AccessToken: "a2", RefreshToken: "r2"}, nil)
	svc.On("Refresh", mock.Anything, "r-body").Return(nil, &authclient.APIError{Status: http.StatusUnauthorized})

	r := authProxyRouter(svc)
	w := perform(r, http.MethodPost, "/api/auth/refresh", nil, map[string]string{"X-Refresh-Token": "r-header"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken":"a2"`)

	w = perform(r, http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"refreshToken":"r-body"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUTH_006"`)

	w = perform(r, http.MethodPost, "/api/auth/refresh", strings.NewReader(`{}`), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthProxyController_LogoutAlwaysSucceeds(t *testing.T) {
	svc := new(mockAuthProxyService)
	svc.On("Logout", mock.Anything, services.CallerTokens{AccessToken: "a1", RefreshToken: "r-body"}).Return(nil)
	svc.On("Logout", mock.Anything, services.CallerTokens{}).Return(nil)

	r := authProxyRouter(svc)
	w := perform(r, http.MethodPost, "/api/auth/logout", strings.NewReader(`{"refreshToken":"r-body"}`), map[string]string{"Authorization": "Bearer a1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodPost, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
