package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/filestorage"
	"github.com/tadreeb/academy/internal/pkg/helpers"
)

const programImageDir = "programs"

// AdminService backs the back-office screens
type AdminService interface {
	ListContactMessages(ctx context.Context, filter dto.ContactMessageFilter) (*dto.PaginatedResponse, error)
	MarkContactMessageRead(ctx context.Context, id int64) error
	ListRegistrations(ctx context.Context, filter dto.RegistrationFilter) (*dto.PaginatedResponse, error)
	ListConsultingRequests(ctx context.Context, filter dto.ConsultingFilter) (*dto.PaginatedResponse, error)
	CreateProgram(ctx context.Context, req *dto.ProgramRequest) (*models.Program, error)
	UpdateProgram(ctx context.Context, id int64, req *dto.ProgramRequest) (*models.Program, error)
	DeleteProgram(ctx context.Context, id int64) error
	UploadProgramImage(ctx context.Context, id int64, file *multipart.FileHeader) (string, error)
}

type adminServiceImpl struct {
	programs      ProgramStore
	contacts      ContactStore
	registrations RegistrationStore
	consulting    ConsultingStore
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewAdminService creates a new back-office service instance
func NewAdminService(
	programs ProgramStore,
	contacts ContactStore,
	registrations RegistrationStore,
	consulting ConsultingStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		programs:      programs,
		contacts:      contacts,
		registrations: registrations,
		consulting:    consulting,
		storage:       storage,
		logger:        logger,
	}
}

func (s *adminServiceImpl) ListContactMessages(ctx context.Context, filter dto.ContactMessageFilter) (*dto.PaginatedResponse, error) {
	items, total, err := s.contacts.List(ctx, filter.UnreadOnly, pageOf(filter.Page, filter.Size))
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: items, Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size)}, nil
}

func (s *adminServiceImpl) MarkContactMessageRead(ctx context.Context, id int64) error {
	return s.contacts.MarkRead(ctx, id)
}

func (s *adminServiceImpl) ListRegistrations(ctx context.Context, filter dto.RegistrationFilter) (*dto.PaginatedResponse, error) {
	var programID *int64
	if filter.ProgramID > 0 {
		programID = &filter.ProgramID
	}
	items, total, err := s.registrations.List(ctx, programID, pageOf(filter.Page, filter.Size))
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: items, Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size)}, nil
}

func (s *adminServiceImpl) ListConsultingRequests(ctx context.Context, filter dto.ConsultingFilter) (*dto.PaginatedResponse, error) {
	items, total, err := s.consulting.List(ctx, filter.Status, pageOf(filter.Page, filter.Size))
	if err != nil {
		return nil, err
	}
	return &dto.PaginatedResponse{Items: items, Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size)}, nil
}

func (s *adminServiceImpl) CreateProgram(ctx context.Context, req *dto.ProgramRequest) (*models.Program, error) {
	program := req.ToModel()
	if err := s.programs.Create(ctx, program); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("programID", program.ID).Str("slug", program.Slug).Msg("Program created")
	return program, nil
}

func (s *adminServiceImpl) UpdateProgram(ctx context.Context, id int64, req *dto.ProgramRequest) (*models.Program, error) {
	program := req.ToModel()
	program.ID = id
	if err := s.programs.Update(ctx, program); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("programID", id).Msg("Program updated")
	return program, nil
}

func (s *adminServiceImpl) DeleteProgram(ctx context.Context, id int64) error {
	if err := s.programs.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("programID", id).Msg("Program deactivated")
	return nil
}

// UploadProgramImage stores the image, points the program at it and removes
// the previous image. The new file is deleted again if the program update fails.
func (s *adminServiceImpl) UploadProgramImage(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	program, err := s.programs.GetByID(ctx, id, false)
	if err != nil {
		return "", err
	}

	imageURL, err := s.storage.SaveImage(file, programImageDir)
	if err != nil {
		return "", err
	}

	if err := s.programs.SetImage(ctx, id, imageURL); err != nil {
		if delErr := s.storage.DeleteFile(imageURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("imageURL", imageURL).Msg("Failed to remove orphaned upload")
		}
		return "", fmt.Errorf("saving program image: %w", err)
	}

	if program.ImageURL != "" && program.ImageURL != imageURL {
		if err := s.storage.DeleteFile(program.ImageURL); err != nil {
			s.logger.Warn().Err(err).Str("imageURL", program.ImageURL).Msg("Failed to remove previous program image")
		}
	}
	return imageURL, nil
}
