package dto

import "github.com/tadreeb/academy/internal/app/models"

// ProgramFilter narrows the program listing
type ProgramFilter struct {
	// Category is a category slug or numeric id
	Category string
	Featured *bool
	Query    string
	Page     int
	Size     int
}

// TrackDetailResponse is a track with its programs resolved in track order
type TrackDetailResponse struct {
	Track    *models.TrainingTrack `json:"track"`
	Programs []models.Program      `json:"programs"`
}

// HomeResponse aggregates the landing page sections
type HomeResponse struct {
	FeaturedPrograms []models.Program       `json:"featuredPrograms"`
	Tracks           []models.TrainingTrack `json:"tracks"`
	Team             []models.TeamMember    `json:"team"`
	Testimonials     []models.Testimonial   `json:"testimonials"`
}
