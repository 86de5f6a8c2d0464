package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
)

// AdminAuthController handles back-office sign-in
type AdminAuthController struct {
	authService services.AdminAuthService
	logger      zerolog.Logger
}

// NewAdminAuthController creates a new AdminAuthController
func NewAdminAuthController(authService services.AdminAuthService, logger zerolog.Logger) *AdminAuthController {
	return &AdminAuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles back-office login
func (c *AdminAuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", req.Email).Msg("Back-office user logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RefreshToken rotates the refresh token and issues a new access token
func (c *AdminAuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Refresh token failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Logout revokes the refresh token
func (c *AdminAuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(translate(ctx, "toast.logout_success")))
}
