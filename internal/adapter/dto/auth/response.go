package auth

import "time"

// UserResponse represents user information in responses
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse represents the authentication response with the bearer token
type AuthResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"` // "Bearer"
	ExpiresIn int           `json:"expires_in"` // seconds
	User      *UserResponse `json:"user"`
}
