package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/authclient"
)

// AuthProxyController relays the SPA's sign-in flows to the auth backend
type AuthProxyController struct {
	authService services.AuthProxyService
	logger      zerolog.Logger
}

// NewAuthProxyController creates a new AuthProxyController
func NewAuthProxyController(authService services.AuthProxyService, logger zerolog.Logger) *AuthProxyController {
	return &AuthProxyController{
		authService: authService,
		logger:      logger,
	}
}

func (c *AuthProxyController) sessionResponse(ctx *gin.Context, sess *authclient.Session, toastKey string) dto.SessionResponse {
	resp := dto.SessionResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		Message:      translate(ctx, toastKey),
	}
	if sess.User != nil {
		resp.User = sess.User
	}
	return resp
}

// RequestOTP asks the backend to email a one-time code
func (c *AuthProxyController) RequestOTP(ctx *gin.Context) {
	var req dto.OTPRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.RequestOTP(ctx.Request.Context(), req); err != nil {
		c.logger.Warn().Err(err).Str("purpose", req.Purpose).Msg("OTP request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(translate(ctx, "toast.otp_sent")))
}

// VerifyOTP exchanges a one-time code for a session
func (c *AuthProxyController) VerifyOTP(ctx *gin.Context) {
	var req dto.OTPVerifyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	sess, err := c.authService.VerifyOTP(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.sessionResponse(ctx, sess, "toast.login_success")))
}

// Register creates an account upstream and returns its session
func (c *AuthProxyController) Register(ctx *gin.Context) {
	var req dto.SignupRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	sess, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(c.sessionResponse(ctx, sess, "toast.register_success")))
}

// Login signs in with email and password
func (c *AuthProxyController) Login(ctx *gin.Context) {
	var req dto.UserLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	sess, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		var apiErr *authclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			err = apperrors.ErrInvalidCredentials
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.sessionResponse(ctx, sess, "toast.login_success")))
}

// ResetPassword sets a new password using a one-time code
func (c *AuthProxyController) ResetPassword(ctx *gin.Context) {
	var req dto.PasswordResetRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(translate(ctx, "toast.password_reset")))
}

// Refresh trades a refresh token for a new pair. The token is read from the
// X-Refresh-Token header, or from the body when the header is absent.
func (c *AuthProxyController) Refresh(ctx *gin.Context) {
	refreshToken := strings.TrimSpace(ctx.GetHeader(middleware.RefreshTokenHeader))
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if !middleware.BindJSON(ctx, &req) {
			return
		}
		refreshToken = req.RefreshToken
	}

	sess, err := c.authService.Refresh(ctx.Request.Context(), refreshToken)
	if err != nil {
		if authclient.IsAuth(err) {
			err = apperrors.ErrTokenExpired
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}))
}

// Logout revokes the session upstream when possible. It always succeeds.
func (c *AuthProxyController) Logout(ctx *gin.Context) {
	caller := services.CallerTokens{}
	if tokens := callerTokens(ctx); tokens != nil {
		caller = *tokens
	}
	if caller.RefreshToken == "" {
		var req dto.LogoutRequest
		// the body is optional
		_ = ctx.ShouldBindJSON(&req)
		caller.RefreshToken = strings.TrimSpace(req.RefreshToken)
	}

	if err := c.authService.Logout(ctx.Request.Context(), caller); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(translate(ctx, "toast.logout_success")))
}

// Me returns the signed-in visitor's profile, refreshing an expired session once
func (c *AuthProxyController) Me(ctx *gin.Context) {
	caller := callerTokens(ctx)
	if caller == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	user, rotated, err := c.authService.Me(ctx.Request.Context(), *caller)
	writeRotated(ctx, rotated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// SSO returns the training platform hand-off URL for the current session
func (c *AuthProxyController) SSO(ctx *gin.Context) {
	caller := callerTokens(ctx)
	if caller == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	target, rotated, err := c.authService.SSORedirect(ctx.Request.Context(), *caller, ctx.Query("next"))
	writeRotated(ctx, rotated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SSOResponse{RedirectURL: target}))
}
