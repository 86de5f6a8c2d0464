package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/authclient"
	"github.com/tadreeb/academy/internal/pkg/i18n"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   dto.ErrorCode
	key    string
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	// Catalog
	{apperrors.ErrProgramNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "errors.not_found"},
	{apperrors.ErrTrackNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "errors.not_found"},
	{apperrors.ErrCategoryNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "errors.not_found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "errors.not_found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "errors.not_found"},

	// Conflicts
	{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "errors.already_registered"},
	{apperrors.ErrSlugTaken, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "errors.conflict"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "errors.conflict"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "errors.conflict"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "errors.conflict"},

	// Registration rules
	{apperrors.ErrProgramClosed, http.StatusUnprocessableEntity, dto.ErrorCodeResourceInvalid, "errors.program_closed"},
	{apperrors.ErrProgramFull, http.StatusUnprocessableEntity, dto.ErrorCodeResourceInvalid, "errors.program_full"},

	// Input
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "errors.validation_failed"},
	{apperrors.ErrUnsupportedLang, http.StatusBadRequest, dto.ErrorCodeBadRequest, "errors.unsupported_language"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "errors.bad_request"},
	{apperrors.ErrUnsupportedFileType, http.StatusUnsupportedMediaType, dto.ErrorCodeBadRequest, "errors.unsupported_file"},
	{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, dto.ErrorCodeBadRequest, "errors.file_too_large"},

	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "errors.invalid_credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "errors.token_expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "errors.token_invalid"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "errors.token_invalid"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "errors.token_invalid"},
	{apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "errors.unauthorized"},
	{authclient.ErrNoSession, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "errors.unauthorized"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "errors.account_disabled"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "errors.forbidden"},

	// Traffic and upstream
	{apperrors.ErrRateLimited, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "errors.rate_limited"},
	{apperrors.ErrUpstreamUnavailable, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "errors.upstream_unavailable"},
	{authclient.ErrInvalidPlatformURL, http.StatusServiceUnavailable, dto.ErrorCodeExternalServiceError, "errors.sso_unavailable"},
}

// HandleAPIError writes the error response for err in the request language.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := resolveError(err, LangFrom(c), i18n.Default())

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("request_id", RequestIDFrom(c)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// RespondValidationError writes a 400 carrying field level messages
func RespondValidationError(c *gin.Context, fields []dto.FieldError) {
	msg := i18n.Default().T(LangFrom(c), "errors.validation_failed")
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, msg).WithDetails(fields)
	if len(fields) > 0 {
		detail = detail.WithField(fields[0].Field)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func resolveError(err error, lang i18n.Lang, bundle *i18n.Bundle) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, dto.NewErrorDetail(m.code, bundle.T(lang, m.key))
		}
	}

	var apiErr *authclient.APIError
	switch authclient.Kind(err) {
	case authclient.KindValidation:
		status := http.StatusBadRequest
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, bundle.T(lang, "errors.validation_failed"))
		if errors.As(err, &apiErr) {
			if apiErr.Status == http.StatusConflict || apiErr.Status == http.StatusUnprocessableEntity {
				status = apiErr.Status
			}
			if len(apiErr.Fields) > 0 {
				fields := make([]dto.FieldError, 0, len(apiErr.Fields))
				for _, name := range apiErr.FieldNames() {
					fields = append(fields, dto.FieldError{Field: name, Message: apiErr.Fields[name]})
				}
				detail = detail.WithField(fields[0].Field).WithDetails(fields)
			}
		}
		return status, detail

	case authclient.KindAuth:
		status, code, key := http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "errors.unauthorized"
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
			status, code, key = http.StatusForbidden, dto.ErrorCodeForbidden, "errors.forbidden"
		}
		return status, dto.NewErrorDetail(code, bundle.T(lang, key))

	case authclient.KindNetwork:
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, bundle.T(lang, "errors.upstream_unavailable"))
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, bundle.T(lang, "errors.internal"))
}
