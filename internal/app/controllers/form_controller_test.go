package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/services"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
)

func formRouter(svc *mockFormService) http.Handler {
	ctrl := NewFormController(svc, zerolog.Nop())
	r := newTestRouter()
	r.POST("/api/contact", ctrl.SubmitContact)
	r.POST("/api/programs/register", ctrl.RegisterForProgram)
	r.POST("/api/consulting", ctrl.SubmitConsulting)
	return r
}

func TestFormController_SubmitContact(t *testing.T) {
	svc := new(mockFormService)
	svc.On("SubmitContact", mock.Anything, mock.MatchedBy(func(req dto.ContactRequest) bool {
		return req.Email == "sara@example.com"
	}), "en").Return(&models.ContactMessage{ID: 41}, nil)

	body := `{"fullName":"Sara Ali","email":"sara@example.com","subject":"Course dates","message":"When does the next cohort start?"}`
	w := perform(formRouter(svc), http.MethodPost, "/api/contact?lang=en", strings.NewReader(body), nil)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"id":41`)
	assert.Contains(t, w.Body.String(), "Your message has been sent")
	svc.AssertExpectations(t)
}

func TestFormController_SubmitContactInvalid(t *testing.T) {
	svc := new(mockFormService)

	body := `{"fullName":"Sara Ali","email":"sara@example.com","phone":"12ab","subject":"Hi","message":"short"}`
	w := perform(formRouter(svc), http.MethodPost, "/api/contact", strings.NewReader(body), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"phone"`)
	assert.Contains(t, w.Body.String(), `"field":"message"`)
	svc.AssertNotCalled(t, "SubmitContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestFormController_RegisterRejections(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrProgramNotFound, http.StatusNotFound},
		{apperrors.ErrProgramClosed, http.StatusUnprocessableEntity},
		{apperrors.ErrProgramFull, http.StatusUnprocessableEntity},
		{apperrors.ErrAlreadyRegistered, http.StatusConflict},
	}

	body := `{"programId":7,"fullName":"Omar Hassan","email":"omar@example.com","phone":"+971501234567"}`
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockFormService)
			svc.On("RegisterForProgram", mock.Anything, mock.Anything, "ar").Return(nil, tt.err)

			w := perform(formRouter(svc), http.MethodPost, "/api/programs/register", strings.NewReader(body), nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestFormController_SubmitConsultingEchoesRotatedTokens(t *testing.T) {
	svc := new(mockFormService)
	caller := &services.CallerTokens{AccessToken: "old-a", RefreshToken: "old-r"}
	svc.On("SubmitConsulting", mock.Anything, mock.Anything, "ar", caller).Return(&services.ConsultingOutcome{
		Request: &models.ConsultingRequest{ID: 5, ForwardStatus: models.ForwardForwarded},
		Rotated: &services.CallerTokens{AccessToken: "new-a", RefreshToken: "new-r"},
	}, nil)

	body := `{"fullName":"Lina Saad","email":"lina@example.com","phone":"0501234567","serviceType":"hr","message":"We need an HR restructuring plan."}`
	w := perform(formRouter(svc), http.MethodPost, "/api/consulting", strings.NewReader(body), map[string]string{
		"Authorization":   "Bearer old-a",
		"X-Refresh-Token": "old-r",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "new-a", w.Header().Get("X-Access-Token"))
	assert.Equal(t, "new-r", w.Header().Get("X-Refresh-Token"))
	assert.Contains(t, w.Body.String(), `"forwardStatus":"forwarded"`)
	svc.AssertExpectations(t)
}

func TestFormController_SubmitConsultingAnonymous(t *testing.T) {
	svc := new(mockFormService)
	svc.On("SubmitConsulting", mock.Anything, mock.Anything, "ar", (*services.CallerTokens)(nil)).Return(&services.ConsultingOutcome{
		Request: &models.ConsultingRequest{ID: 6, ForwardStatus: models.ForwardFailed},
	}, nil)

	body := `{"fullName":"Lina Saad","email":"lina@example.com","phone":"0501234567","serviceType":"quality","message":"Looking for an excellence model audit."}`
	w := perform(formRouter(svc), http.MethodPost, "/api/consulting", strings.NewReader(body), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-Access-Token"))
	svc.AssertExpectations(t)
}
