package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
	"github.com/meetscribe-team/meetscribe/internal/domain/repositories"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
	"github.com/meetscribe-team/meetscribe/pkg/jwt"
	"github.com/meetscribe-team/meetscribe/pkg/password"
)

// OAuthProvider abstracts the external OAuth identity provider
type OAuthProvider interface {
	GetAuthURL(state string) string
	Authenticate(ctx context.Context, code string) (email, name, avatarURL string, err error)
}

// StateManager issues and validates one-time OAuth state tokens
type StateManager interface {
	GenerateState() (string, error)
	ValidateState(state string) bool
}

// Service handles registration, login and token verification
type Service struct {
	userRepo   repositories.UserRepository
	jwtManager *jwt.Manager
	provider   OAuthProvider
	states     StateManager
}

// NewService creates a new auth service. provider and states may be nil when
// OAuth login is disabled.
func NewService(userRepo repositories.UserRepository, jwtManager *jwt.Manager, provider OAuthProvider, states StateManager) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		provider:   provider,
		states:     states,
	}
}

// RegisterInput represents input for creating an account
type RegisterInput struct {
	Username  string
	Password  string
	FullName  string
	Email     string
	AvatarURL *string
}

// Register creates a new account and issues a bearer token
func (s *Service) Register(ctx context.Context, input RegisterInput) (*entities.User, string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, "", usecaseErrors.ErrEmailAlreadyUsed
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, "", usecaseErrors.ErrUsernameTaken
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.NewUser(input.Username, input.FullName, input.Email)
	user.PasswordHash = hashed
	user.AvatarURL = input.AvatarURL

	if err := user.Validate(); err != nil {
		return nil, "", usecaseErrors.ErrInvalidInput
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a bearer token
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*entities.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, "", usecaseErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.PasswordHash == "" || !password.Verify(user.PasswordHash, plainPassword) {
		return nil, "", usecaseErrors.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// VerifyToken validates a bearer token and loads the user it identifies
func (s *Service) VerifyToken(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, usecaseErrors.ErrTokenExpired
		}
		return nil, usecaseErrors.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Profile returns the user's public profile (password stripped)
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user.ToPublic(), nil
}

// GoogleLoginURL starts an OAuth login by issuing a CSRF state token
func (s *Service) GoogleLoginURL() (string, error) {
	if s.provider == nil || s.states == nil {
		return "", usecaseErrors.ErrInvalidInput
	}
	state, err := s.states.GenerateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return s.provider.GetAuthURL(state), nil
}

// GoogleCallback completes an OAuth login, creating the account on first use
func (s *Service) GoogleCallback(ctx context.Context, state, code string) (*entities.User, string, error) {
	if s.provider == nil || s.states == nil {
		return nil, "", usecaseErrors.ErrInvalidInput
	}
	if !s.states.ValidateState(state) {
		return nil, "", usecaseErrors.ErrTokenInvalid
	}

	email, name, avatarURL, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("oauth authentication failed: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		user = entities.NewUser(email, name, email)
		if avatarURL != "" {
			user.AvatarURL = &avatarURL
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
