package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/middleware"
)

// FormController accepts the public contact, registration and consulting forms
type FormController struct {
	formService services.FormService
	logger      zerolog.Logger
}

// NewFormController creates a new FormController
func NewFormController(formService services.FormService, logger zerolog.Logger) *FormController {
	return &FormController{
		formService: formService,
		logger:      logger,
	}
}

// SubmitContact stores a contact message
func (c *FormController) SubmitContact(ctx *gin.Context) {
	var req dto.ContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lang := middleware.LangFrom(ctx)
	msg, err := c.formService.SubmitContact(ctx.Request.Context(), req, lang.String())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SubmissionResponse{
		ID:      msg.ID,
		Message: translate(ctx, "toast.contact_sent"),
	}))
}

// RegisterForProgram stores a program registration
func (c *FormController) RegisterForProgram(ctx *gin.Context) {
	var req dto.ProgramRegistrationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	reg, err := c.formService.RegisterForProgram(ctx.Request.Context(), req, middleware.LangFrom(ctx).String())
	if err != nil {
		c.logger.Info().Err(err).Int64("programId", req.ProgramID).Msg("Registration not accepted")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SubmissionResponse{
		ID:      reg.ID,
		Message: translate(ctx, "toast.registration_sent"),
	}))
}

// SubmitConsulting stores a consulting request and forwards it to the auth
// backend, on behalf of the signed-in visitor when a session is attached.
func (c *FormController) SubmitConsulting(ctx *gin.Context) {
	var req dto.ConsultingRequestBody
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	outcome, err := c.formService.SubmitConsulting(ctx.Request.Context(), req, middleware.LangFrom(ctx).String(), callerTokens(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	writeRotated(ctx, outcome.Rotated)

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.SubmissionResponse{
		ID:            outcome.Request.ID,
		Message:       translate(ctx, "toast.consulting_sent"),
		ForwardStatus: outcome.Request.ForwardStatus,
	}))
}
