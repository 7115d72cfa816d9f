package presenter

import (
	authDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/auth"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}

	response := &authDTO.UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.AvatarURL != nil {
		response.AvatarURL = *u.AvatarURL
	}
	return response
}

// ToAuthResponse bundles a user with their issued token
func ToAuthResponse(u *entities.User, token string, expiresIn int) *authDTO.AuthResponse {
	return &authDTO.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      ToUserResponse(u),
	}
}
