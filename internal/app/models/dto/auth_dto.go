package dto

import "github.com/tadreeb/academy/internal/app/models"

// LoginRequest represents back-office login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents successful back-office authentication
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *models.User  `json:"user"`
}

// OTPRequest asks the auth backend to send a one-time code
type OTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose" binding:"required,oneof=login register reset"`
}

// OTPVerifyRequest exchanges a one-time code for a session
type OTPVerifyRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required,otp"`
	Purpose string `json:"purpose" binding:"required,oneof=login register reset"`
}

// SignupRequest creates an account on the auth backend
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Code     string `json:"code" binding:"required,otp"`
}

// UserLoginRequest is a password login against the auth backend
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetRequest sets a new password using a one-time code
type PasswordResetRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// LogoutRequest optionally carries the refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SessionResponse is returned to the SPA after a successful sign-in
type SessionResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         interface{} `json:"user,omitempty"`
	Message      string      `json:"message,omitempty"`
}

// SSOResponse carries the training platform hand-off URL
type SSOResponse struct {
	RedirectURL string `json:"redirectUrl"`
}
