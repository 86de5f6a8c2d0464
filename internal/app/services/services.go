package services

import (
	"context"
	"time"

	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/app/repositories"
	"github.com/tadreeb/academy/internal/pkg/helpers"
)

// The stores below are the repository methods each service depends on.
// The concrete repositories in package repositories satisfy them.

// CategoryStore reads catalog categories
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// ProgramStore reads and writes programs
type ProgramStore interface {
	List(ctx context.Context, q repositories.ProgramQuery) ([]models.Program, int64, error)
	ListByTrack(ctx context.Context, trackID int64) ([]models.Program, error)
	GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Program, error)
	GetBySlug(ctx context.Context, slug string, activeOnly bool) (*models.Program, error)
	Create(ctx context.Context, p *models.Program) error
	Update(ctx context.Context, p *models.Program) error
	Deactivate(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, imageURL string) error
}

// TrackStore reads training tracks
type TrackStore interface {
	List(ctx context.Context) ([]models.TrainingTrack, error)
	GetByID(ctx context.Context, id int64) (*models.TrainingTrack, error)
	GetBySlug(ctx context.Context, slug string) (*models.TrainingTrack, error)
}

// PeopleStore reads team members and testimonials
type PeopleStore interface {
	ListTeam(ctx context.Context) ([]models.TeamMember, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
}

// ContactStore persists contact messages
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context, unreadOnly bool, page repositories.Page) ([]models.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id int64) error
}

// RegistrationStore persists program registrations
type RegistrationStore interface {
	Create(ctx context.Context, reg *models.ProgramRegistration) (*models.Program, error)
	List(ctx context.Context, programID *int64, page repositories.Page) ([]models.ProgramRegistration, int64, error)
}

// ConsultingStore persists consulting requests
type ConsultingStore interface {
	Create(ctx context.Context, req *models.ConsultingRequest) error
	UpdateForwardStatus(ctx context.Context, id int64, status models.ForwardStatus, externalRef *string) error
	List(ctx context.Context, status models.ForwardStatus, page repositories.Page) ([]models.ConsultingRequest, int64, error)
}

// UserStore reads and creates back-office users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TokenStore persists back-office refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	RotateToken(ctx context.Context, oldToken, newToken string, expiryDate time.Time) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

func pageOf(page, size int) repositories.Page {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return repositories.Page{Offset: offset, Limit: limit}
}
