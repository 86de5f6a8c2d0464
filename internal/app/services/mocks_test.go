package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/pkg/authclient"
)

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryStore) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *mockCategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

type mockProgramStore struct{ mock.Mock }

func (m *mockProgramStore) List(ctx context.Context, q repositories.ProgramQuery) ([]models.Program, int64, error) {
	args := m.Called(ctx, q)
	programs, _ := args.Get(0).([]models.Program)
	return programs, args.Get(1).(int64), args.Error(2)
}

func (m *mockProgramStore) ListByTrack(ctx context.Context, trackID int64) ([]models.Program, error) {
	args := m.Called(ctx, trackID)
	programs, _ := args.Get(0).([]models.Program)
	return programs, args.Error(1)
}

func (m *mockProgramStore) GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Program, error) {
	args := m.Called(ctx, id, activeOnly)
	p, _ := args.Get(0).(*models.Program)
	return p, args.Error(1)
}

func (m *mockProgramStore) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Program, error) {
	args := m.Called(ctx, slug, activeOnly)
	p, _ := args.Get(0).(*models.Program)
	return p, args.Error(1)
}

func (m *mockProgramStore) Create(ctx context.Context, p *models.Program) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProgramStore) Update(ctx context.Context, p *models.Program) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProgramStore) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProgramStore) SetImage(ctx context.Context, id int64, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

type mockTrackStore struct{ mock.Mock }

func (m *mockTrackStore) List(ctx context.Context) ([]models.TrainingTrack, error) {
	args := m.Called(ctx)
	tracks, _ := args.Get(0).([]models.TrainingTrack)
	return tracks, args.Error(1)
}

func (m *mockTrackStore) GetByID(ctx context.Context, id int64) (*models.TrainingTrack, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*models.TrainingTrack)
	return t, args.Error(1)
}

func (m *mockTrackStore) GetBySlug(ctx context.Context, slug string) (*models.TrainingTrack, error) {
	args := m.Called(ctx, slug)
	t, _ := args.Get(0).(*models.TrainingTrack)
	return t, args.Error(1)
}

type mockPeopleStore struct{ mock.Mock }

func (m *mockPeopleStore) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	args := m.Called(ctx)
	team, _ := args.Get(0).([]models.TeamMember)
	return team, args.Error(1)
}

func (m *mockPeopleStore) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.Testimonial)
	return items, args.Error(1)
}

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockContactStore) List(ctx context.Context, unreadOnly bool, page repositories.Page) ([]models.ContactMessage, int64, error) {
	args := m.Called(ctx, unreadOnly, page)
	items, _ := args.Get(0).([]models.ContactMessage)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockContactStore) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRegistrationStore struct{ mock.Mock }

func (m *mockRegistrationStore) Create(ctx context.Context, reg *models.ProgramRegistration) (*models.Program, error) {
	args := m.Called(ctx, reg)
	p, _ := args.Get(0).(*models.Program)
	return p, args.Error(1)
}

func (m *mockRegistrationStore) List(ctx context.Context, programID *int64, page repositories.Page) ([]models.ProgramRegistration, int64, error) {
	args := m.Called(ctx, programID, page)
	items, _ := args.Get(0).([]models.ProgramRegistration)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockConsultingStore struct{ mock.Mock }

func (m *mockConsultingStore) Create(ctx context.Context, req *models.ConsultingRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockConsultingStore) UpdateForwardStatus(ctx context.Context, id int64, status models.ForwardStatus, externalRef *string) error {
	return m.Called(ctx, id, status, externalRef).Error(0)
}

func (m *mockConsultingStore) List(ctx context.Context, status models.ForwardStatus, page repositories.Page) ([]models.ConsultingRequest, int64, error) {
	args := m.Called(ctx, status, page)
	items, _ := args.Get(0).([]models.ConsultingRequest)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	return m.Called(ctx, token, userID, expiryDate).Error(0)
}

func (m *mockTokenStore) RotateToken(ctx context.Context, oldToken, newToken string, expiryDate time.Time) (int64, error) {
	args := m.Called(ctx, oldToken, newToken, expiryDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenStore) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenStore) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockNotifier) NotifyRegistration(ctx context.Context, reg *models.ProgramRegistration, program *models.Program) error {
	return m.Called(ctx, reg, program).Error(0)
}

func (m *mockNotifier) NotifyConsulting(ctx context.Context, req *models.ConsultingRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockForwarder struct{ mock.Mock }

func (m *mockForwarder) ForwardConsulting(ctx context.Context, caller *CallerTokens, sub authclient.ConsultingSubmission) (*authclient.ConsultingReceipt, *CallerTokens, error) {
	args := m.Called(ctx, caller, sub)
	receipt, _ := args.Get(0).(*authclient.ConsultingReceipt)
	rotated, _ := args.Get(1).(*CallerTokens)
	return receipt, rotated, args.Error(2)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) SaveImage(fh *multipart.FileHeader, path string) (string, error) {
	args := m.Called(fh, path)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteFile(fileURL string) error {
	return m.Called(fileURL).Error(0)
}

func (m *mockStorage) GetFullPath(fileURL string) string {
	return m.Called(fileURL).String(0)
}
