package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/authclient"
	"github.com/tadreeb/academy/internal/pkg/metrics"
)

type formMocks struct {
	contacts      *mockContactStore
	registrations *mockRegistrationStore
	consulting    *mockConsultingStore
	forwarder     *mockForwarder
	notifier      *mockNotifier
	metrics       *metrics.Metrics
}

func newForms() (FormService, formMocks) {
	m := formMocks{
		contacts:      &mockContactStore{},
		registrations: &mockRegistrationStore{},
		consulting:    &mockConsultingStore{},
		forwarder:     &mockForwarder{},
		notifier:      &mockNotifier{},
		metrics:       metrics.New(),
	}
	svc := NewFormService(m.contacts, m.registrations, m.consulting, m.forwarder, m.notifier, m.metrics, zerolog.Nop())
	return svc, m
}

func formCount(t *testing.T, m *metrics.Metrics, form, result string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "academy_form_submissions_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := map[string]string{}
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["form"] == form && labels["result"] == result {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestSubmitContact_NormalizesAndNotifies(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()

	m.contacts.On("Create", ctx, mock.MatchedBy(func(msg *models.ContactMessage) bool {
		return msg.Email == "sara@example.com" && msg.Phone != nil && *msg.Phone == "+966501234567" && msg.Lang == "ar"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.ContactMessage).ID = 11
	}).Return(nil)
	m.notifier.On("NotifyContact", ctx, mock.Anything).Return(errors.New("smtp down"))

	msg, err := svc.SubmitContact(ctx, dto.ContactRequest{
		FullName: " Sara ",
		Email:    "Sara@Example.com ",
		Phone:    "+966 50-123-4567",
		Subject:  "Training",
		Message:  "We need a leadership program",
	}, "ar")

	require.NoError(t, err, "notification failures are never returned")
	assert.Equal(t, int64(11), msg.ID)
	assert.Equal(t, "Sara", msg.FullName)
	assert.Equal(t, 1.0, formCount(t, m.metrics, FormContact, metrics.ResultAccepted))
	m.notifier.AssertExpectations(t)
}

func TestSubmitContact_EmptyPhoneStoredAsNull(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()
	m.contacts.On("Create", ctx, mock.MatchedBy(func(msg *models.ContactMessage) bool { return msg.Phone == nil })).Return(nil)
	m.notifier.On("NotifyContact", ctx, mock.Anything).Return(nil)

	_, err := svc.SubmitContact(ctx, dto.ContactRequest{FullName: "Ali", Email: "a@b.co", Subject: "Hi", Message: "0123456789"}, "en")
	require.NoError(t, err)
}

func TestRegisterForProgram_RejectionsAreCountedNotNotified(t *testing.T) {
	for _, sentinel := range []error{apperrors.ErrProgramFull, apperrors.ErrProgramClosed, apperrors.ErrAlreadyRegistered} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			svc, m := newForms()
			ctx := context.Background()
			m.registrations.On("Create", ctx, mock.Anything).Return(nil, sentinel)

			_, err := svc.RegisterForProgram(ctx, dto.ProgramRegistrationRequest{ProgramID: 1, Phone: "0501234567"}, "en")

			assert.ErrorIs(t, err, sentinel)
			assert.Equal(t, 1.0, formCount(t, m.metrics, FormRegistration, metrics.ResultRejected))
			m.notifier.AssertNotCalled(t, "NotifyRegistration", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterForProgram_Success(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()
	program := &models.Program{ID: 3, Slug: "hr-basics"}

	m.registrations.On("Create", ctx, mock.MatchedBy(func(reg *models.ProgramRegistration) bool {
		return reg.ProgramID == 3 && reg.Organization == nil && reg.JobTitle != nil && *reg.JobTitle == "HR lead"
	})).Return(program, nil)
	m.notifier.On("NotifyRegistration", ctx, mock.Anything, program).Return(nil)

	reg, err := svc.RegisterForProgram(ctx, dto.ProgramRegistrationRequest{
		ProgramID: 3, FullName: "Omar", Email: "omar@example.com", Phone: "0501234567", JobTitle: "HR lead",
	}, "en")
	require.NoError(t, err)
	assert.Equal(t, "en", reg.Lang)
	m.notifier.AssertExpectations(t)
}

func consultingBody() dto.ConsultingRequestBody {
	return dto.ConsultingRequestBody{
		FullName:    "Huda",
		Email:       "huda@example.com",
		Phone:       "+966501234567",
		ServiceType: models.ServiceHR,
		Message:     "Restructure our HR department",
	}
}

func TestSubmitConsulting_ForwardedWithRotatedTokens(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()
	caller := &CallerTokens{AccessToken: "old-a", RefreshToken: "old-r"}
	rotatedTokens := &CallerTokens{AccessToken: "new-a", RefreshToken: "new-r"}

	m.consulting.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		req := args.Get(1).(*models.ConsultingRequest)
		req.ID = 21
		req.ForwardStatus = models.ForwardPending
	}).Return(nil)
	m.forwarder.On("ForwardConsulting", ctx, caller, mock.MatchedBy(func(sub authclient.ConsultingSubmission) bool {
		return sub.Reference == 21 && sub.ServiceType == "hr" && sub.Lang == "ar"
	})).Return(&authclient.ConsultingReceipt{ID: "ext-9"}, rotatedTokens, nil)
	m.consulting.On("UpdateForwardStatus", ctx, int64(21), models.ForwardForwarded, mock.MatchedBy(func(ref *string) bool {
		return ref != nil && *ref == "ext-9"
	})).Return(nil)
	m.notifier.On("NotifyConsulting", ctx, mock.Anything).Return(nil)

	out, err := svc.SubmitConsulting(ctx, consultingBody(), "ar", caller)
	require.NoError(t, err)
	assert.Equal(t, models.ForwardForwarded, out.Request.ForwardStatus)
	assert.Equal(t, "ext-9", *out.Request.ExternalRef)
	assert.Equal(t, rotatedTokens, out.Rotated)
	m.consulting.AssertExpectations(t)
}

func TestSubmitConsulting_FailedForwardStillSucceeds(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()

	m.consulting.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.ConsultingRequest).ID = 5
	}).Return(nil)
	m.forwarder.On("ForwardConsulting", ctx, (*CallerTokens)(nil), mock.Anything).
		Return(nil, nil, authclient.ErrNetwork)
	m.consulting.On("UpdateForwardStatus", ctx, int64(5), models.ForwardFailed, (*string)(nil)).Return(nil)
	m.notifier.On("NotifyConsulting", ctx, mock.Anything).Return(nil)

	out, err := svc.SubmitConsulting(ctx, consultingBody(), "en", nil)
	require.NoError(t, err)
	assert.Equal(t, models.ForwardFailed, out.Request.ForwardStatus)
	assert.Nil(t, out.Rotated)
}

func TestSubmitConsulting_StoreFailureSkipsForward(t *testing.T) {
	svc, m := newForms()
	ctx := context.Background()
	m.consulting.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.SubmitConsulting(ctx, consultingBody(), "en", nil)
	assert.Error(t, err)
	m.forwarder.AssertNotCalled(t, "ForwardConsulting", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, formCount(t, m.metrics, FormConsulting, metrics.ResultError))
}
