package dto

import (
	"time"

	"github.com/tadreeb/academy/internal/app/models"
)

// LocalizedInput is a bilingual text field in admin forms
type LocalizedInput struct {
	AR string `json:"ar" binding:"required,max=5000"`
	EN string `json:"en" binding:"required,max=5000"`
}

// ToModel converts the input into a LocalizedText
func (l LocalizedInput) ToModel() models.LocalizedText {
	return models.LocalizedText{AR: l.AR, EN: l.EN}
}

// ProgramRequest creates or replaces a program
type ProgramRequest struct {
	Slug          string              `json:"slug" binding:"required,slug,max=120"`
	CategoryID    int64               `json:"categoryId" binding:"required,gt=0"`
	Title         LocalizedInput      `json:"title"`
	Summary       LocalizedInput      `json:"summary"`
	Description   LocalizedInput      `json:"description"`
	DurationHours int                 `json:"durationHours" binding:"required,gt=0,lte=2000"`
	DeliveryMode  models.DeliveryMode `json:"deliveryMode" binding:"required,oneof=online onsite hybrid"`
	Level         models.Level        `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	Price         int64               `json:"price" binding:"gte=0"`
	Currency      string              `json:"currency" binding:"required,len=3,uppercase"`
	StartDate     *time.Time          `json:"startDate"`
	Seats         int                 `json:"seats" binding:"gte=0"`
	Featured      bool                `json:"featured"`
	IsActive      *bool               `json:"isActive"`
}

// ToModel builds a program from the request
func (r *ProgramRequest) ToModel() *models.Program {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.Program{
		Slug:          r.Slug,
		CategoryID:    r.CategoryID,
		Title:         r.Title.ToModel(),
		Summary:       r.Summary.ToModel(),
		Description:   r.Description.ToModel(),
		DurationHours: r.DurationHours,
		DeliveryMode:  r.DeliveryMode,
		Level:         r.Level,
		Price:         r.Price,
		Currency:      r.Currency,
		StartDate:     r.StartDate,
		Seats:         r.Seats,
		Featured:      r.Featured,
		IsActive:      active,
	}
}

// ContactMessageFilter narrows the admin inbox
type ContactMessageFilter struct {
	UnreadOnly bool
	Page       int
	Size       int
}

// RegistrationFilter narrows the registrations list
type RegistrationFilter struct {
	ProgramID int64
	Page      int
	Size      int
}

// ConsultingFilter narrows the consulting requests list
type ConsultingFilter struct {
	Status models.ForwardStatus
	Page   int
	Size   int
}

// ImageUploadResponse returns the public URL of an uploaded program image
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
