package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/i18n"
	"github.com/tadreeb/academy/internal/pkg/logger"
	"github.com/tadreeb/academy/internal/pkg/validation"
)

// BindJSON decodes and validates the body into obj. On failure the error
// response has already been written and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	if fields, ok := validation.FieldErrors(err, LangFrom(c), i18n.Default()); ok {
		RespondValidationError(c, fields)
		return false
	}

	logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Malformed request body")
	HandleAPIError(c, apperrors.ErrBadRequest)
	return false
}
