package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/helpers"
)

// CatalogController serves the public, read-only catalog
type CatalogController struct {
	catalogService services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCategories returns every category in display order
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogService.ListCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(categories))
}

// ListPrograms returns a page of active programs.
// Query: category (slug or id), featured, q, page, size.
func (c *CatalogController) ListPrograms(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.ProgramFilter{
		Category: strings.TrimSpace(ctx.Query("category")),
		Query:    strings.TrimSpace(ctx.Query("q")),
		Page:     page,
		Size:     size,
	}

	if raw := ctx.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("featured must be true or false"))
			return
		}
		filter.Featured = &featured
	}

	result, err := c.catalogService.ListPrograms(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetProgram returns one active program by id or slug
func (c *CatalogController) GetProgram(ctx *gin.Context) {
	program, err := c.catalogService.GetProgram(ctx.Request.Context(), ctx.Param("idOrSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program))
}

// ListTracks returns the training tracks with their program ids
func (c *CatalogController) ListTracks(ctx *gin.Context) {
	tracks, err := c.catalogService.ListTracks(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tracks))
}

// GetTrack returns a track with its programs in track order
func (c *CatalogController) GetTrack(ctx *gin.Context) {
	track, err := c.catalogService.GetTrack(ctx.Request.Context(), ctx.Param("idOrSlug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(track))
}

func (c *CatalogController) ListTeam(ctx *gin.Context) {
	team, err := c.catalogService.ListTeam(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team))
}

func (c *CatalogController) ListTestimonials(ctx *gin.Context) {
	testimonials, err := c.catalogService.ListTestimonials(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(testimonials))
}

// Home returns every landing page section in one response
func (c *CatalogController) Home(ctx *gin.Context) {
	home, err := c.catalogService.Home(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build home page")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(home))
}
