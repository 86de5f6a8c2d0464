package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/authclient"
)

// CallerTokens is the token pair the SPA sent with a request
type CallerTokens struct {
	AccessToken  string
	RefreshToken string
}

// AuthProxyService relays end-user authentication to the external auth
// backend. Calls that carry caller tokens run through a request-scoped
// session manager, so an expired access token is refreshed once and the
// call replayed; the rotated pair is returned so it can be echoed back.
type AuthProxyService interface {
	RequestOTP(ctx context.Context, req dto.OTPRequest) error
	VerifyOTP(ctx context.Context, req dto.OTPVerifyRequest) (*authclient.Session, error)
	Register(ctx context.Context, req dto.SignupRequest) (*authclient.Session, error)
	Login(ctx context.Context, req dto.UserLoginRequest) (*authclient.Session, error)
	ResetPassword(ctx context.Context, req dto.PasswordResetRequest) error
	Refresh(ctx context.Context, refreshToken string) (*authclient.Session, error)
	Logout(ctx context.Context, caller CallerTokens) error
	Me(ctx context.Context, caller CallerTokens) (*authclient.User, *CallerTokens, error)
	SSORedirect(ctx context.Context, caller CallerTokens, next string) (string, *CallerTokens, error)
	ForwardConsulting(ctx context.Context, caller *CallerTokens, sub authclient.ConsultingSubmission) (*authclient.ConsultingReceipt, *CallerTokens, error)
}

type authProxyServiceImpl struct {
	client      *authclient.Client
	platformURL string
	opts        []authclient.ManagerOption
	logger      zerolog.Logger
}

// NewAuthProxyService creates a new auth proxy service instance
func NewAuthProxyService(client *authclient.Client, platformURL string, logger zerolog.Logger, opts ...authclient.ManagerOption) AuthProxyService {
	return &authProxyServiceImpl{
		client:      client,
		platformURL: platformURL,
		opts:        opts,
		logger:      logger,
	}
}

// sessionFor returns a manager over the caller's tokens and the store it saves to
func (s *authProxyServiceImpl) sessionFor(caller CallerTokens) (*authclient.Manager, *authclient.MemoryStore) {
	store := authclient.NewMemoryStore(&authclient.Session{
		AccessToken:  caller.AccessToken,
		RefreshToken: caller.RefreshToken,
	})
	return authclient.NewManager(s.client, store, s.opts...), store
}

// rotated reports the new pair when the manager refreshed the caller's session
func rotated(store *authclient.MemoryStore, caller CallerTokens) *CallerTokens {
	sess, err := store.Load()
	if err != nil || sess.AccessToken == caller.AccessToken {
		return nil
	}
	return &CallerTokens{AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}
}

func sessionFromTokens(tokens *authclient.Tokens) *authclient.Session {
	return &authclient.Session{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         tokens.User,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authProxyServiceImpl) RequestOTP(ctx context.Context, req dto.OTPRequest) error {
	return s.client.RequestOTP(ctx, authclient.OTPRequest{
		Email:   normalizeEmail(req.Email),
		Purpose: req.Purpose,
	})
}

func (s *authProxyServiceImpl) VerifyOTP(ctx context.Context, req dto.OTPVerifyRequest) (*authclient.Session, error) {
	tokens, err := s.client.VerifyOTP(ctx, authclient.VerifyOTPRequest{
		Email:   normalizeEmail(req.Email),
		Code:    req.Code,
		Purpose: req.Purpose,
	})
	if err != nil {
		return nil, err
	}
	return sessionFromTokens(tokens), nil
}

func (s *authProxyServiceImpl) Register(ctx context.Context, req dto.SignupRequest) (*authclient.Session, error) {
	tokens, err := s.client.Register(ctx, authclient.RegisterRequest{
		FullName: strings.TrimSpace(req.FullName),
		Email:    normalizeEmail(req.Email),
		Phone:    req.Phone,
		Password: req.Password,
		Code:     req.Code,
	})
	if err != nil {
		return nil, err
	}
	return sessionFromTokens(tokens), nil
}

func (s *authProxyServiceImpl) Login(ctx context.Context, req dto.UserLoginRequest) (*authclient.Session, error) {
	tokens, err := s.client.Login(ctx, authclient.LoginRequest{
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return sessionFromTokens(tokens), nil
}

func (s *authProxyServiceImpl) ResetPassword(ctx context.Context, req dto.PasswordResetRequest) error {
	return s.client.ResetPassword(ctx, authclient.ResetPasswordRequest{
		Email:       normalizeEmail(req.Email),
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
}

func (s *authProxyServiceImpl) Refresh(ctx context.Context, refreshToken string) (*authclient.Session, error) {
	tokens, err := s.client.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	return sessionFromTokens(tokens), nil
}

// Logout always succeeds from the caller's point of view; upstream failures are logged.
func (s *authProxyServiceImpl) Logout(ctx context.Context, caller CallerTokens) error {
	if caller.AccessToken == "" && caller.RefreshToken == "" {
		return nil
	}
	if err := s.client.Logout(ctx, caller.AccessToken, caller.RefreshToken); err != nil {
		s.logger.Warn().Err(err).Str("kind", authclient.Kind(err).String()).Msg("Upstream logout failed")
	}
	return nil
}

func (s *authProxyServiceImpl) Me(ctx context.Context, caller CallerTokens) (*authclient.User, *CallerTokens, error) {
	mgr, store := s.sessionFor(caller)
	user, err := mgr.Me(ctx)
	return user, rotated(store, caller), err
}

func (s *authProxyServiceImpl) SSORedirect(ctx context.Context, caller CallerTokens, next string) (string, *CallerTokens, error) {
	mgr, store := s.sessionFor(caller)
	target, err := mgr.SSORedirectURL(ctx, s.platformURL, next)
	return target, rotated(store, caller), err
}

// ForwardConsulting submits a consulting request upstream. Anonymous callers
// (nil or empty tokens) are forwarded without a session.
func (s *authProxyServiceImpl) ForwardConsulting(ctx context.Context, caller *CallerTokens, sub authclient.ConsultingSubmission) (*authclient.ConsultingReceipt, *CallerTokens, error) {
	if caller == nil || caller.AccessToken == "" {
		receipt, err := s.client.SubmitConsulting(ctx, "", sub)
		return receipt, nil, err
	}

	mgr, store := s.sessionFor(*caller)
	receipt, err := mgr.SubmitConsulting(ctx, sub)
	return receipt, rotated(store, *caller), err
}
