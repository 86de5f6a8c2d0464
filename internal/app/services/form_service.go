package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/authclient"
	"github.com/tadreeb/academy/internal/pkg/email"
	"github.com/tadreeb/academy/internal/pkg/helpers"
	"github.com/tadreeb/academy/internal/pkg/metrics"
	"github.com/tadreeb/academy/internal/pkg/validation"
)

// Form names used in logs and metrics
const (
	FormContact      = "contact"
	FormRegistration = "registration"
	FormConsulting   = "consulting"
)

// ConsultingForwarder delivers a consulting request to the external backend
type ConsultingForwarder interface {
	ForwardConsulting(ctx context.Context, caller *CallerTokens, sub authclient.ConsultingSubmission) (*authclient.ConsultingReceipt, *CallerTokens, error)
}

// ConsultingOutcome is a stored consulting request and, when the caller's
// session was refreshed while forwarding, the rotated tokens.
type ConsultingOutcome struct {
	Request *models.ConsultingRequest
	Rotated *CallerTokens
}

// FormService stores public form submissions and notifies staff
type FormService interface {
	SubmitContact(ctx context.Context, req dto.ContactRequest, lang string) (*models.ContactMessage, error)
	RegisterForProgram(ctx context.Context, req dto.ProgramRegistrationRequest, lang string) (*models.ProgramRegistration, error)
	SubmitConsulting(ctx context.Context, req dto.ConsultingRequestBody, lang string, caller *CallerTokens) (*ConsultingOutcome, error)
}

type formServiceImpl struct {
	contacts      ContactStore
	registrations RegistrationStore
	consulting    ConsultingStore
	forwarder     ConsultingForwarder
	notifier      email.Notifier
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// NewFormService creates a new form service instance. forwarder may be nil,
// in which case consulting requests stay pending.
func NewFormService(
	contacts ContactStore,
	registrations RegistrationStore,
	consulting ConsultingStore,
	forwarder ConsultingForwarder,
	notifier email.Notifier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) FormService {
	return &formServiceImpl{
		contacts:      contacts,
		registrations: registrations,
		consulting:    consulting,
		forwarder:     forwarder,
		notifier:      notifier,
		metrics:       m,
		logger:        logger,
	}
}

func normalizedPhone(phone string) *string {
	return helpers.NullableString(validation.NormalizePhone(phone))
}

func (s *formServiceImpl) record(form string, err error) {
	switch {
	case err == nil:
		s.metrics.FormSubmitted(form, metrics.ResultAccepted)
	case apperrors.Is(err, apperrors.ErrProgramNotFound, apperrors.ErrProgramClosed, apperrors.ErrProgramFull, apperrors.ErrAlreadyRegistered):
		s.metrics.FormSubmitted(form, metrics.ResultRejected)
	default:
		s.metrics.FormSubmitted(form, metrics.ResultError)
	}
}

func (s *formServiceImpl) notify(form string, send func() error) {
	if s.notifier == nil {
		return
	}
	if err := send(); err != nil {
		s.logger.Error().Err(err).Str("form", form).Msg("Staff notification failed")
	}
}

func (s *formServiceImpl) SubmitContact(ctx context.Context, req dto.ContactRequest, lang string) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		FullName: strings.TrimSpace(req.FullName),
		Email:    normalizeEmail(req.Email),
		Phone:    normalizedPhone(req.Phone),
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		Lang:     lang,
	}

	err := s.contacts.Create(ctx, msg)
	s.record(FormContact, err)
	if err != nil {
		return nil, fmt.Errorf("storing contact message: %w", err)
	}

	s.logger.Info().Int64("id", msg.ID).Str("lang", lang).Msg("Contact message received")
	s.notify(FormContact, func() error { return s.notifier.NotifyContact(ctx, msg) })
	return msg, nil
}

func (s *formServiceImpl) RegisterForProgram(ctx context.Context, req dto.ProgramRegistrationRequest, lang string) (*models.ProgramRegistration, error) {
	reg := &models.ProgramRegistration{
		ProgramID:    req.ProgramID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		Phone:        validation.NormalizePhone(req.Phone),
		Organization: helpers.NullableString(req.Organization),
		JobTitle:     helpers.NullableString(req.JobTitle),
		Notes:        helpers.NullableString(req.Notes),
		Lang:         lang,
	}

	program, err := s.registrations.Create(ctx, reg)
	s.record(FormRegistration, err)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", reg.ID).Int64("programID", reg.ProgramID).Msg("Program registration received")
	s.notify(FormRegistration, func() error { return s.notifier.NotifyRegistration(ctx, reg, program) })
	return reg, nil
}

// SubmitConsulting stores the request as pending, then forwards it. A failed
// forward is recorded on the row but does not fail the submission.
func (s *formServiceImpl) SubmitConsulting(ctx context.Context, req dto.ConsultingRequestBody, lang string, caller *CallerTokens) (*ConsultingOutcome, error) {
	cr := &models.ConsultingRequest{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        normalizeEmail(req.Email),
		Phone:        validation.NormalizePhone(req.Phone),
		Organization: helpers.NullableString(req.Organization),
		ServiceType:  req.ServiceType,
		Message:      strings.TrimSpace(req.Message),
		Lang:         lang,
	}

	err := s.consulting.Create(ctx, cr)
	s.record(FormConsulting, err)
	if err != nil {
		return nil, fmt.Errorf("storing consulting request: %w", err)
	}

	outcome := &ConsultingOutcome{Request: cr}
	if s.forwarder != nil {
		outcome.Rotated = s.forward(ctx, cr, caller)
	}

	s.notify(FormConsulting, func() error { return s.notifier.NotifyConsulting(ctx, cr) })
	return outcome, nil
}

func (s *formServiceImpl) forward(ctx context.Context, cr *models.ConsultingRequest, caller *CallerTokens) *CallerTokens {
	receipt, rotatedTokens, err := s.forwarder.ForwardConsulting(ctx, caller, authclient.ConsultingSubmission{
		FullName:     cr.FullName,
		Email:        cr.Email,
		Phone:        cr.Phone,
		Organization: helpers.Deref(cr.Organization),
		ServiceType:  string(cr.ServiceType),
		Message:      cr.Message,
		Lang:         cr.Lang,
		Reference:    cr.ID,
	})

	status := models.ForwardForwarded
	var ref *string
	if err != nil {
		status = models.ForwardFailed
		s.logger.Warn().Err(err).Int64("id", cr.ID).Str("kind", authclient.Kind(err).String()).Msg("Forwarding consulting request failed")
	} else if receipt != nil {
		ref = helpers.NullableString(receipt.ID)
	}

	if err := s.consulting.UpdateForwardStatus(ctx, cr.ID, status, ref); err != nil {
		s.logger.Error().Err(err).Int64("id", cr.ID).Msg("Recording forward status failed")
	} else {
		cr.ForwardStatus = status
		cr.ExternalRef = ref
	}
	return rotatedTokens
}
