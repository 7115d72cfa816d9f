package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meetscribe-team/meetscribe/internal/adapter/repository"
	usecaseErrors "github.com/meetscribe-team/meetscribe/internal/usecase/errors"
	pkgjwt "github.com/meetscribe-team/meetscribe/pkg/jwt"
)

func newTestService() *Service {
	store := repository.NewMemoryStore()
	return NewService(store.Users(), pkgjwt.NewManager("test-secret", 24*time.Hour), nil, nil)
}

func TestRegisterLoginProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	user, token, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "s3cret-pass",
		FullName: "Alice Doe",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("register must issue a token")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password must be stored hashed")
	}

	loggedIn, loginToken, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatal("login must return the registered user")
	}

	verified, err := svc.VerifyToken(ctx, loginToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.ID != user.ID {
		t.Fatal("token must decode to the same user id")
	}

	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "alice@example.com" || profile.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	input := RegisterInput{
		Username: "bob",
		Password: "pass-123",
		FullName: "Bob",
		Email:    "bob@example.com",
	}
	if _, _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("register: %v", err)
	}

	input.Username = "bob2"
	if _, _, err := svc.Register(ctx, input); !errors.Is(err, usecaseErrors.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Username: "carol",
		Password: "right-pass",
		FullName: "Carol",
		Email:    "carol@example.com",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "carol@example.com", "wrong-pass"); !errors.Is(err, usecaseErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, usecaseErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newTestService()
	if _, err := svc.VerifyToken(context.Background(), "not-a-token"); !errors.Is(err, usecaseErrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
