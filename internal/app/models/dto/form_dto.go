package dto

import "github.com/tadreeb/academy/internal/app/models"

// ContactRequest is the contact form body
type ContactRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Subject  string `json:"subject" binding:"required,min=2,max=150"`
	Message  string `json:"message" binding:"required,min=10,max=5000"`
}

// ProgramRegistrationRequest is the program registration form body
type ProgramRegistrationRequest struct {
	ProgramID    int64  `json:"programId" binding:"required,gt=0"`
	FullName     string `json:"fullName" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email,max=254"`
	Phone        string `json:"phone" binding:"required,phone"`
	Organization string `json:"organization" binding:"omitempty,max=150"`
	JobTitle     string `json:"jobTitle" binding:"omitempty,max=100"`
	Notes        string `json:"notes" binding:"omitempty,max=2000"`
}

// ConsultingRequestBody is the consulting request form body
type ConsultingRequestBody struct {
	FullName     string             `json:"fullName" binding:"required,min=2,max=100"`
	Email        string             `json:"email" binding:"required,email,max=254"`
	Phone        string             `json:"phone" binding:"required,phone"`
	Organization string             `json:"organization" binding:"omitempty,max=150"`
	ServiceType  models.ServiceType `json:"serviceType" binding:"required,oneof=strategy hr training_needs quality other"`
	Message      string             `json:"message" binding:"required,min=10,max=5000"`
}

// SubmissionResponse acknowledges a stored form submission
type SubmissionResponse struct {
	ID      int64  `json:"id" example:"12"`
	Message string `json:"message" example:"Thank you! Your message has been sent."`
	// ForwardStatus is only set for consulting requests
	ForwardStatus models.ForwardStatus `json:"forwardStatus,omitempty"`
}
