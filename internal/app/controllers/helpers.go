// Package controllers handles HTTP request handling
package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 when it is not one
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(name+" must be a positive number"))
		return 0, false
	}
	return id, true
}

// translate returns key in the request language
func translate(ctx *gin.Context, key string, args ...interface{}) string {
	return i18n.Default().T(middleware.LangFrom(ctx), key, args...)
}

// callerTokens reads the auth backend session the SPA attached to the
// request. It returns nil for anonymous requests.
func callerTokens(ctx *gin.Context) *services.CallerTokens {
	access := strings.TrimSpace(ctx.GetHeader("Authorization"))
	if len(access) > 7 && strings.EqualFold(access[:7], "Bearer ") {
		access = strings.TrimSpace(access[7:])
	}
	if access == "" {
		return nil
	}
	return &services.CallerTokens{
		AccessToken:  access,
		RefreshToken: strings.TrimSpace(ctx.GetHeader(middleware.RefreshTokenHeader)),
	}
}

// writeRotated echoes refreshed tokens so the SPA can replace its stored pair
func writeRotated(ctx *gin.Context, rotated *services.CallerTokens) {
	if rotated == nil {
		return
	}
	ctx.Header(middleware.AccessTokenHeader, rotated.AccessToken)
	if rotated.RefreshToken != "" {
		ctx.Header(middleware.RefreshTokenHeader, rotated.RefreshToken)
	}
}
