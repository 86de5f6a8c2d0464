package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

// I18nController serves the UI dictionaries to the SPA
type I18nController struct {
	bundle *i18n.Bundle
}

// NewI18nController creates a new I18nController
func NewI18nController(bundle *i18n.Bundle) *I18nController {
	return &I18nController{bundle: bundle}
}

// Languages lists the supported languages and the default one
func (c *I18nController) Languages(ctx *gin.Context) {
	supported := make([]dto.LanguageInfo, 0, len(i18n.Supported))
	for _, lang := range i18n.Supported {
		supported = append(supported, dto.LanguageInfo{Lang: lang.String(), Dir: lang.Dir()})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LanguagesResponse{
		Default:   i18n.DefaultLang.String(),
		Supported: supported,
	}))
}

// Dictionary returns every message of one language
func (c *I18nController) Dictionary(ctx *gin.Context) {
	lang, ok := i18n.ParseLang(ctx.Param("lang"))
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnsupportedLang)
		return
	}

	ctx.Header("Cache-Control", "public, max-age=300")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DictionaryResponse{
		Lang:     lang.String(),
		Dir:      lang.Dir(),
		Messages: c.bundle.Messages(lang),
	}))
}
