package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/morabaat/backend/internal/domain/identity"
)

// RegisterInput contains input for account registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginInput contains input for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput contains the refresh token to rotate
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID      uuid.UUID
	AccessJTI   string
	AccessTTL   time.Duration
	AllSessions bool
}

// ChangePasswordInput contains input for a password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserInfo is the user payload returned to clients
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Avatar      string     `json:"avatar,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewUserInfo maps a domain user to its API shape
func NewUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Avatar:      u.Avatar,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResult is returned from register, login and refresh
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UpdateProfileInput contains the fields a user may change on their account
type UpdateProfileInput struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar *string `json:"avatar" binding:"omitempty,max=500"`
}

// AdminUpdateUserInput contains the fields a super admin may change
type AdminUpdateUserInput struct {
	Role     *string `json:"role" binding:"omitempty,oneof=USER COMPANY_OWNER ADMIN SUPER_ADMIN"`
	IsActive *bool   `json:"is_active"`
}
