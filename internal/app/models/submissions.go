package models

import "time"

// ContactMessage is a message sent through the contact form
type ContactMessage struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Lang      string    `json:"lang"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProgramRegistration is a seat request for a program
type ProgramRegistration struct {
	ID           int64     `json:"id"`
	ProgramID    int64     `json:"programId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Organization *string   `json:"organization,omitempty"`
	JobTitle     *string   `json:"jobTitle,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	Lang         string    `json:"lang"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ConsultingRequest is a request for a consulting engagement
type ConsultingRequest struct {
	ID            int64         `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Organization  *string       `json:"organization,omitempty"`
	ServiceType   ServiceType   `json:"serviceType"`
	Message       string        `json:"message"`
	Lang          string        `json:"lang"`
	ForwardStatus ForwardStatus `json:"forwardStatus"`
	ExternalRef   *string       `json:"externalRef,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
