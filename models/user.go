package models

import "time"

type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Avatar              string    `json:"avatar,omitempty"`
	Currency            string    `json:"currency"`
	MonthlyIncome       float64   `json:"monthly_income"`
	UsagePurpose        string    `json:"usage_purpose"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	PasswordHash        string    `json:"-"` // Never expose in JSON
	TOTPSecret          string    `json:"-"` // Never expose in JSON
	TOTPEnabled         bool      `json:"totp_enabled"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type AuthResponse struct {
	Success      bool   `json:"success"`
	User         User   `json:"user"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ============================================================================
// ONBOARDING & SETTINGS
// ============================================================================

type CompleteOnboardingRequest struct {
	Avatar        string  `json:"avatar"`
	UsagePurpose  string  `json:"usage_purpose"`
	Currency      string  `json:"currency"`
	MonthlyIncome float64 `json:"monthly_income"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
