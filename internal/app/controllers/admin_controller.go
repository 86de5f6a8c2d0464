package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/helpers"
)

// ImageFormField is the multipart field carrying a program image
const ImageFormField = "image"

// AdminController serves the back-office inbox and catalog editing
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListContactMessages returns the contact inbox, newest first. Query: unread, page, size.
func (c *AdminController) ListContactMessages(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.ContactMessageFilter{Page: page, Size: size}

	if raw := ctx.Query("unread"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("unread must be true or false"))
			return
		}
		filter.UnreadOnly = unread
	}

	result, err := c.adminService.ListContactMessages(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// MarkContactMessageRead flags a contact message as handled
func (c *AdminController) MarkContactMessageRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.MarkContactMessageRead(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// ListRegistrations returns program registrations. Query: programId, page, size.
func (c *AdminController) ListRegistrations(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.RegistrationFilter{Page: page, Size: size}

	if raw := ctx.Query("programId"); raw != "" {
		programID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || programID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("programId must be a positive number"))
			return
		}
		filter.ProgramID = programID
	}

	result, err := c.adminService.ListRegistrations(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// ListConsultingRequests returns consulting requests. Query: status, page, size.
func (c *AdminController) ListConsultingRequests(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := dto.ConsultingFilter{Page: page, Size: size}

	if raw := ctx.Query("status"); raw != "" {
		status := models.ForwardStatus(raw)
		switch status {
		case models.ForwardPending, models.ForwardForwarded, models.ForwardFailed:
			filter.Status = status
		default:
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("status must be pending, forwarded or failed"))
			return
		}
	}

	result, err := c.adminService.ListConsultingRequests(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// CreateProgram adds a program to the catalog
func (c *AdminController) CreateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.adminService.CreateProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	userID, _ := middleware.UserIDFrom(ctx)
	c.logger.Info().Int64("programId", program.ID).Int64("userID", userID).Msg("Program created")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(program))
}

// UpdateProgram replaces a program's editable fields
func (c *AdminController) UpdateProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program, err := c.adminService.UpdateProgram(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(program))
}

// DeleteProgram hides a program from the public catalog
func (c *AdminController) DeleteProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteProgram(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	userID, _ := middleware.UserIDFrom(ctx)
	c.logger.Info().Int64("programId", id).Int64("userID", userID).Msg("Program deactivated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// UploadProgramImage stores a new cover image for a program
func (c *AdminController) UploadProgramImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile(ImageFormField)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Missing image in upload")
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("image file is required"))
		return
	}

	url, err := c.adminService.UploadProgramImage(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ImageUploadResponse{ImageURL: url}))
}
