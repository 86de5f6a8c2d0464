package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
)

func adminRouter(svc *mockAdminService) *gin.Engine {
	ctrl := NewAdminController(svc, zerolog.Nop())
	r := newTestRouter()
	g := r.Group("/api/admin")
	g.GET("/contact-messages", ctrl.ListContactMessages)
	g.PATCH("/contact-messages/:id/read", ctrl.MarkContactMessageRead)
	g.GET("/registrations", ctrl.ListRegistrations)
	g.GET("/consulting-requests", ctrl.ListConsultingRequests)
	g.POST("/programs", ctrl.CreateProgram)
	g.PUT("/programs/:id", ctrl.UpdateProgram)
	g.DELETE("/programs/:id", ctrl.DeleteProgram)
	g.POST("/programs/:id/image", ctrl.UploadProgramImage)
	return r
}

const programBody = `{
	"slug": "project-management-basics",
	"categoryId": 2,
	"title": {"ar": "أساسيات إدارة المشاريع", "en": "Project Management Basics"},
	"summary": {"ar": "مقدمة", "en": "An introduction"},
	"description": {"ar": "وصف", "en": "Description"},
	"durationHours": 24,
	"deliveryMode": "hybrid",
	"level": "beginner",
	"price": 150000,
	"currency": "SAR",
	"seats": 20
}`

func TestAdminController_ListFilters(t *testing.T) {
	svc := new(mockAdminService)
	empty := &dto.PaginatedResponse{Items: []interface{}{}}
	svc.On("ListContactMessages", mock.Anything, dto.ContactMessageFilter{UnreadOnly: true, Page: 1, Size: 20}).Return(empty, nil)
	svc.On("ListRegistrations", mock.Anything, dto.RegistrationFilter{ProgramID: 7, Page: 3, Size: 10}).Return(empty, nil)
	svc.On("ListConsultingRequests", mock.Anything, dto.ConsultingFilter{Status: models.ForwardFailed, Page: 1, Size: 10}).Return(empty, nil)

	r := adminRouter(svc)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/admin/contact-messages?unread=true&size=20", nil, nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/admin/registrations?programId=7&page=3", nil, nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/api/admin/consulting-requests?status=failed", nil, nil).Code)
	svc.AssertExpectations(t)
}

func TestAdminController_RejectsBadQuery(t *testing.T) {
	svc := new(mockAdminService)
	r := adminRouter(svc)

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/admin/consulting-requests?status=archived", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/admin/registrations?programId=abc", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodGet, "/api/admin/contact-messages?unread=sometimes", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPatch, "/api/admin/contact-messages/zero/read", nil, nil).Code)
}

func TestAdminController_MarkReadNotFound(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("MarkContactMessageRead", mock.Anything, int64(12)).Return(apperrors.NewResourceNotFoundError("contact message 12 not found"))

	w := perform(adminRouter(svc), http.MethodPatch, "/api/admin/contact-messages/12/read", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminController_CreateAndUpdateProgram(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("CreateProgram", mock.Anything, mock.MatchedBy(func(req *dto.ProgramRequest) bool {
		return req.Slug == "project-management-basics" && req.Title.EN == "Project Management Basics"
	})).Return(&models.Program{ID: 9, Slug: "project-management-basics"}, nil)
	svc.On("UpdateProgram", mock.Anything, int64(9), mock.Anything).Return(nil, apperrors.ErrSlugTaken)

	r := adminRouter(svc)
	w := perform(r, http.MethodPost, "/api/admin/programs", strings.NewReader(programBody), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"id":9`)

	w = perform(r, http.MethodPut, "/api/admin/programs/9", strings.NewReader(programBody), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminController_CreateProgramValidation(t *testing.T) {
	svc := new(mockAdminService)
	body := strings.Replace(programBody, `"project-management-basics"`, `"Project Management"`, 1)
	body = strings.Replace(body, `"hybrid"`, `"by-mail"`, 1)

	w := perform(adminRouter(svc), http.MethodPost, "/api/admin/programs", strings.NewReader(body), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"slug"`)
	assert.Contains(t, w.Body.String(), `"field":"deliveryMode"`)
	svc.AssertNotCalled(t, "CreateProgram", mock.Anything, mock.Anything)
}

func TestAdminController_DeleteProgram(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("DeleteProgram", mock.Anything, int64(4)).Return(nil)

	w := perform(adminRouter(svc), http.MethodDelete, "/api/admin/programs/4", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAdminController_UploadProgramImage(t *testing.T) {
	svc := new(mockAdminService)
	svc.On("UploadProgramImage", mock.Anything, int64(3), mock.MatchedBy(func(fh *multipart.FileHeader) bool {
		return fh.Filename == "cover.png"
	})).Return("/uploads/programs/abc.png", nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(ImageFormField, "cover.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/programs/3/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	adminRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"imageUrl":"/uploads/programs/abc.png"`)

	// no file part
	w = perform(adminRouter(svc), http.MethodPost, "/api/admin/programs/3/image", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAuthController(t *testing.T) {
	svc := new(mockAdminAuthService)
	svc.On("Login", mock.Anything, dto.LoginRequest{Email: "admin@academy.test", Password: "pw"}).Return(&dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: "jwt", TokenType: "Bearer", RefreshToken: "r1"},
	}, nil)
	svc.On("Refresh", mock.Anything, "revoked").Return(nil, apperrors.ErrTokenRevoked)
	svc.On("Logout", mock.Anything, "r1").Return(nil)

	ctrl := NewAdminAuthController(svc, zerolog.Nop())
	r := newTestRouter()
	r.POST("/login", ctrl.Login)
	r.POST("/refresh", ctrl.RefreshToken)
	r.POST("/logout", ctrl.Logout)

	w := perform(r, http.MethodPost, "/login", strings.NewReader(`{"email":"admin@academy.test","password":"pw"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken":"jwt"`)

	w = perform(r, http.MethodPost, "/refresh", strings.NewReader(`{"refreshToken":"revoked"}`), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/logout", strings.NewReader(`{"refreshToken":"r1"}`), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
