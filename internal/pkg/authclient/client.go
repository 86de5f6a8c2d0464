// Package authclient talks to the external OTP/auth backend and keeps the
// user's session fresh.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// OTP purposes accepted by the backend
const (
	PurposeLogin    = "login"
	PurposeRegister = "register"
	PurposeReset    = "reset"
)

// Config configures the backend client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set
	HTTPClient *http.Client
}

// Client is a stateless HTTP client for the auth backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// User is the end-user profile returned by the backend
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Tokens is a session issued by the backend
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// OTPRequest asks for a one-time code
type OTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

// VerifyOTPRequest exchanges a one-time code for tokens
type VerifyOTPRequest struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// RegisterRequest creates an account
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// LoginRequest is a password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest sets a new password with a one-time code
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ConsultingSubmission is a consulting request forwarded to the backend
type ConsultingSubmission struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization,omitempty"`
	ServiceType  string `json:"serviceType"`
	Message      string `json:"message"`
	Lang         string `json:"lang"`
	Reference    int64  `json:"reference"`
}

// ConsultingReceipt is the backend's acknowledgement of a consulting request
type ConsultingReceipt struct {
	ID string `json:"id"`
}

// New creates a client for the backend at cfg.BaseURL
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("auth backend URL %q must be an absolute http(s) URL", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: httpClient,
	}, nil
}

// RequestOTP asks the backend to email a one-time code
func (c *Client) RequestOTP(ctx context.Context, req OTPRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/otp/request", "", req, nil)
}

// VerifyOTP exchanges a one-time code for a session
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Tokens, error) {
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/otp/verify", "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates an account and returns its first session
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Tokens, error) {
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Login signs in with email and password
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Tokens, error) {
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// ResetPassword sets a new password
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/password/reset", "", req, nil)
}

// Refresh trades a refresh token for a new session
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var tokens Tokens
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", body, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the session on the backend
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.do(ctx, http.MethodPost, "/auth/logout", accessToken, body, nil)
}

// Me returns the profile of the token's owner
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SubmitConsulting forwards a consulting request; accessToken may be empty
func (c *Client) SubmitConsulting(ctx context.Context, accessToken string, req ConsultingSubmission) (*ConsultingReceipt, error) {
	var receipt ConsultingReceipt
	if err := c.do(ctx, http.MethodPost, "/consulting-requests", accessToken, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s response: %w", ErrNetwork, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// Some endpoints wrap the payload as {"data": {...}}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(data, &envelope) == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		data = envelope.Data
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
