package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tadreeb/academy/internal/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshSkew is how early an access token is refreshed before it expires
const DefaultRefreshSkew = 30 * time.Second

// Refresh outcomes reported to the observer
const (
	RefreshSuccess  = "success"
	RefreshRejected = "rejected"
	RefreshFailed   = "failed"
)

// Manager attaches the stored session to backend calls and refreshes it
// when the backend rejects it.
type Manager struct {
	client   *Client
	store    SessionStore
	skew     time.Duration
	now      func() time.Time
	observer func(result string)
	group    singleflight.Group
}

// ManagerOption customizes a Manager
type ManagerOption func(*Manager)

// WithRefreshSkew sets how close to expiry a token is refreshed proactively
func WithRefreshSkew(d time.Duration) ManagerOption {
	return func(m *Manager) { m.skew = d }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithRefreshObserver receives the outcome of every upstream refresh call
func WithRefreshObserver(fn func(result string)) ManagerOption {
	return func(m *Manager) { m.observer = fn }
}

// NewManager creates a session manager
func NewManager(client *Client, store SessionStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		skew:   DefaultRefreshSkew,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Client returns the underlying stateless client
func (m *Manager) Client() *Client {
	return m.client
}

// Session returns the stored session
func (m *Manager) Session() (*Session, error) {
	return m.store.Load()
}

// Login signs in and stores the session
func (m *Manager) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	tokens, err := m.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.save(tokens, nil)
}

// VerifyOTP exchanges a code for a session and stores it
func (m *Manager) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Session, error) {
	tokens, err := m.client.VerifyOTP(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.save(tokens, nil)
}

// Register creates an account and stores its session
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	tokens, err := m.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.save(tokens, nil)
}

// Do runs fn with the current access token.
//
// A token close to expiry is refreshed before the call. If fn fails with a
// 401/403 the session is refreshed once and fn is replayed once. When that
// refresh fails, fn's original error is returned, and the session is cleared
// if the backend rejected the refresh token. At most one refresh happens per Do.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, accessToken string) error) error {
	sess, err := m.store.Load()
	if err != nil {
		return err
	}

	refreshed := false
	if m.expiresSoon(sess.AccessToken) {
		refreshed = true
		next, err := m.refresh(ctx, sess)
		switch {
		case err == nil:
			sess = next
		case IsAuth(err):
			m.clear()
			return fmt.Errorf("session expired: %w", err)
		default:
			logger.Warn().Err(err).Msg("Proactive token refresh failed, using current token")
		}
	}

	err = fn(ctx, sess.AccessToken)
	if err == nil || refreshed || !IsAuth(err) {
		return err
	}

	next, refreshErr := m.refresh(ctx, sess)
	if refreshErr != nil {
		if IsAuth(refreshErr) {
			m.clear()
		}
		logger.Warn().Err(refreshErr).Msg("Token refresh after rejected call failed")
		return err
	}

	return fn(ctx, next.AccessToken)
}

// Me returns the signed-in user's profile
func (m *Manager) Me(ctx context.Context) (*User, error) {
	var user *User
	err := m.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		user, err = m.client.Me(ctx, token)
		return err
	})
	return user, err
}

// SubmitConsulting forwards a consulting request on behalf of the signed-in user
func (m *Manager) SubmitConsulting(ctx context.Context, req ConsultingSubmission) (*ConsultingReceipt, error) {
	var receipt *ConsultingReceipt
	err := m.Do(ctx, func(ctx context.Context, token string) error {
		var err error
		receipt, err = m.client.SubmitConsulting(ctx, token, req)
		return err
	})
	return receipt, err
}

// Logout revokes the session upstream when possible and always clears it locally.
func (m *Manager) Logout(ctx context.Context) error {
	sess, err := m.store.Load()
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err == nil {
		if err := m.client.Logout(ctx, sess.AccessToken, sess.RefreshToken); err != nil {
			logger.Warn().Err(err).Msg("Upstream logout failed, clearing local session anyway")
		}
	}
	return m.store.Clear()
}

// SSORedirectURL builds the training platform hand-off URL for the current session.
// The platform URL is checked first so a misconfigured target never rotates tokens.
func (m *Manager) SSORedirectURL(ctx context.Context, platformURL, next string) (string, error) {
	if _, err := parsePlatformURL(platformURL); err != nil {
		return "", err
	}
	var token string
	err := m.Do(ctx, func(_ context.Context, accessToken string) error {
		token = accessToken
		return nil
	})
	if err != nil {
		return "", err
	}
	return BuildSSORedirectURL(platformURL, token, next)
}

func (m *Manager) refresh(ctx context.Context, sess *Session) (*Session, error) {
	// the shared call outlives whichever caller started it; the client timeout bounds it
	upstream := context.WithoutCancel(ctx)
	ch := m.group.DoChan(sess.RefreshToken, func() (interface{}, error) {
		// A concurrent caller may already have rotated this refresh token
		if current, err := m.store.Load(); err == nil && current.RefreshToken != sess.RefreshToken {
			return current, nil
		}

		tokens, err := m.client.Refresh(upstream, sess.RefreshToken)
		if err != nil {
			if IsAuth(err) {
				m.observe(RefreshRejected)
			} else {
				m.observe(RefreshFailed)
			}
			return nil, err
		}
		m.observe(RefreshSuccess)

		if tokens.RefreshToken == "" {
			tokens.RefreshToken = sess.RefreshToken
		}
		return m.save(tokens, sess.User)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Session), nil
	}
}

func (m *Manager) save(tokens *Tokens, fallbackUser *User) (*Session, error) {
	sess := &Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         tokens.User,
		UpdatedAt:    m.now(),
	}
	if sess.User == nil {
		sess.User = fallbackUser
	}
	if err := m.store.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return sess, nil
}

func (m *Manager) clear() {
	if err := m.store.Clear(); err != nil {
		logger.Error().Err(err).Msg("Failed to clear rejected session")
	}
}

func (m *Manager) observe(result string) {
	if m.observer != nil {
		m.observer(result)
	}
}

func (m *Manager) expiresSoon(accessToken string) bool {
	exp, ok := ExpiresAt(accessToken)
	if !ok {
		return false
	}
	return !exp.After(m.now().Add(m.skew))
}

// ExpiresAt reads the exp claim of a JWT without verifying its signature.
// ok is false for opaque tokens or tokens without exp.
func ExpiresAt(token string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// BuildSSORedirectURL returns <platform>/sso?token=<token>&redirect=<next>.
// next must be a path on the platform; anything else becomes "/".
func BuildSSORedirectURL(platformURL, token, next string) (string, error) {
	u, err := parsePlatformURL(platformURL)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoSession
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/sso"
	q := url.Values{}
	q.Set("token", token)
	q.Set("redirect", SafeRedirectPath(next))
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

func parsePlatformURL(platformURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(platformURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidPlatformURL
	}
	return u, nil
}

// SafeRedirectPath keeps relative paths and rejects anything that could leave the site.
func SafeRedirectPath(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\\r\n") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}
