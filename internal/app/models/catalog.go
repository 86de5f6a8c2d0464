package models

import "time"

// Category groups programs on the catalog page
type Category struct {
	ID        int64         `json:"id"`
	Slug      string        `json:"slug"`
	Name      LocalizedText `json:"name"`
	SortOrder int           `json:"sortOrder"`
}

// Program is a training program offered by the academy
type Program struct {
	ID            int64         `json:"id"`
	Slug          string        `json:"slug"`
	CategoryID    int64         `json:"categoryId"`
	Title         LocalizedText `json:"title"`
	Summary       LocalizedText `json:"summary"`
	Description   LocalizedText `json:"description"`
	DurationHours int           `json:"durationHours"`
	DeliveryMode  DeliveryMode  `json:"deliveryMode"`
	Level         Level         `json:"level"`
	Price         int64         `json:"price"` // minor units
	Currency      string        `json:"currency"`
	StartDate     *time.Time    `json:"startDate,omitempty"`
	Seats         int           `json:"seats"` // 0 means unlimited
	ImageURL      string        `json:"imageUrl,omitempty"`
	Featured      bool          `json:"featured"`
	IsActive      bool          `json:"isActive"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// TrainingTrack is an ordered learning path made of programs
type TrainingTrack struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	SortOrder   int           `json:"sortOrder"`
	ProgramIDs  []int64       `json:"programIds"`
}

// TeamMember is a trainer or consultant shown on the team page
type TeamMember struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	Name        LocalizedText `json:"name"`
	Role        LocalizedText `json:"role"`
	Bio         LocalizedText `json:"bio"`
	PhotoURL    string        `json:"photoUrl,omitempty"`
	LinkedInURL string        `json:"linkedinUrl,omitempty"`
	SortOrder   int           `json:"sortOrder"`
}

// Testimonial is a client quote
type Testimonial struct {
	ID          int64         `json:"id"`
	Slug        string        `json:"slug"`
	AuthorName  LocalizedText `json:"authorName"`
	AuthorTitle LocalizedText `json:"authorTitle"`
	Quote       LocalizedText `json:"quote"`
	Rating      int           `json:"rating"`
	SortOrder   int           `json:"sortOrder"`
}
