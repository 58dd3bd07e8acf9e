package app

import "github.com/riya-sharma-12/LangSync/internal/sdk/models"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OnboardRequest struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}

// UserResponse is the success envelope for every user-returning endpoint.
// The user's password hash never appears here; models.User excludes it
// from serialization.
type UserResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MissingFieldsResponse reports which onboarding fields were absent.
type MissingFieldsResponse struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missingFields"`
}

type ChatTokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type LivenessResponse struct {
	Status     string `json:"status"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}
