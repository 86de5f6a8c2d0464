package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
)

type adminMocks struct {
	programs      *mockProgramStore
	contacts      *mockContactStore
	registrations *mockRegistrationStore
	consulting    *mockConsultingStore
	storage       *mockStorage
}

func newAdmin() (AdminService, adminMocks) {
	m := adminMocks{
		programs:      &mockProgramStore{},
		contacts:      &mockContactStore{},
		registrations: &mockRegistrationStore{},
		consulting:    &mockConsultingStore{},
		storage:       &mockStorage{},
	}
	return NewAdminService(m.programs, m.contacts, m.registrations, m.consulting, m.storage, zerolog.Nop()), m
}

func TestListContactMessages_Paginates(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	m.contacts.On("List", ctx, true, repositories.Page{Offset: 20, Limit: 20}).
		Return([]models.ContactMessage{{ID: 1}}, int64(41), nil)

	resp, err := svc.ListContactMessages(ctx, dto.ContactMessageFilter{UnreadOnly: true, Page: 2, Size: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestListRegistrations_ProgramFilterOptional(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	m.registrations.On("List", ctx, (*int64)(nil), mock.Anything).Return([]models.ProgramRegistration{}, int64(0), nil).Once()
	m.registrations.On("List", ctx, mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 8 }), mock.Anything).
		Return([]models.ProgramRegistration{{ID: 1, ProgramID: 8}}, int64(1), nil).Once()

	_, err := svc.ListRegistrations(ctx, dto.RegistrationFilter{})
	require.NoError(t, err)
	resp, err := svc.ListRegistrations(ctx, dto.RegistrationFilter{ProgramID: 8})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	m.registrations.AssertExpectations(t)
}

func TestUpdateProgram_SetsID(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	m.programs.On("Update", ctx, mock.MatchedBy(func(p *models.Program) bool { return p.ID == 9 && p.IsActive })).Return(nil)

	p, err := svc.UpdateProgram(ctx, 9, &dto.ProgramRequest{Slug: "x", Currency: "SAR"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID)
}

func TestUploadProgramImage_ReplacesPrevious(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	fh := &multipart.FileHeader{Filename: "cover.png"}

	m.programs.On("GetByID", ctx, int64(3), false).Return(&models.Program{ID: 3, ImageURL: "/uploads/programs/old.png"}, nil)
	m.storage.On("SaveImage", fh, "programs").Return("/uploads/programs/new.png", nil)
	m.programs.On("SetImage", ctx, int64(3), "/uploads/programs/new.png").Return(nil)
	m.storage.On("DeleteFile", "/uploads/programs/old.png").Return(nil)

	url, err := svc.UploadProgramImage(ctx, 3, fh)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/programs/new.png", url)
	m.storage.AssertExpectations(t)
}

func TestUploadProgramImage_CleansUpOnFailure(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	fh := &multipart.FileHeader{Filename: "cover.png"}

	m.programs.On("GetByID", ctx, int64(3), false).Return(&models.Program{ID: 3}, nil)
	m.storage.On("SaveImage", fh, "programs").Return("/uploads/programs/new.png", nil)
	m.programs.On("SetImage", ctx, int64(3), mock.Anything).Return(errors.New("db down"))
	m.storage.On("DeleteFile", "/uploads/programs/new.png").Return(nil)

	_, err := svc.UploadProgramImage(ctx, 3, fh)
	assert.Error(t, err)
	m.storage.AssertExpectations(t)
}

func TestUploadProgramImage_UnknownProgram(t *testing.T) {
	svc, m := newAdmin()
	ctx := context.Background()
	m.programs.On("GetByID", ctx, int64(99), false).Return(nil, apperrors.ErrProgramNotFound)

	_, err := svc.UploadProgramImage(ctx, 99, &multipart.FileHeader{})
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
	m.storage.AssertNotCalled(t, "SaveImage", mock.Anything, mock.Anything)
}
