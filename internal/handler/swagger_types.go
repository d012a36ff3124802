package handler

import (
	"smartclaim/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SignupRequest represents the signup request body.
type SignupRequest struct {
	FullName        string `json:"fullName" binding:"required" example:"Jane Roe"`
	Email           string `json:"email" binding:"required" example:"jane@example.com"`
	Password        string `json:"password" binding:"required" example:"s3cret"`
	ConfirmPassword string `json:"confirmPassword" binding:"required" example:"s3cret"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// AddClaimRequest carries the public URL of an uploaded invoice image.
type AddClaimRequest struct {
	Image string `json:"image" binding:"required" example:"https://cdn.example.com/users/1/documents/invoice.png"`
}

// --- Response Types ---

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	UserID  string `json:"userId" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message   string `json:"message" example:"Login successful"`
	UserID    string `json:"userId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expiresAt" example:"2024-03-02T10:15:00Z"`
}

// AddClaimResponse is returned after a claim is recorded.
type AddClaimResponse struct {
	Message string       `json:"message" example:"Claim added successfully"`
	Claim   domain.Claim `json:"claim"`
}

// ClaimListResponse lists a user's claims.
type ClaimListResponse struct {
	Claims []domain.Claim `json:"claims"`
	Total  int            `json:"total" example:"12"`
}

// ClaimResponse wraps a single claim.
type ClaimResponse struct {
	Claim domain.Claim `json:"claim"`
}

// ProfileResponse wraps a user profile.
type ProfileResponse struct {
	User domain.User `json:"user"`
}

// StatsResponse wraps claim statistics.
type StatsResponse struct {
	Stats domain.ClaimStats `json:"stats"`
}

// DocumentResponse describes a stored upload.
type DocumentResponse struct {
	URL         string `json:"url" example:"https://cdn.example.com/users/1/documents/2b1c.png"`
	Key         string `json:"key" example:"users/1/documents/2b1c.png"`
	ContentType string `json:"contentType" example:"image/png"`
	Size        int64  `json:"size" example:"204800"`
}
