package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobpilot/internal/domain/user"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]user.User{}, byID: map[uuid.UUID]user.User{}}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}
func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Demo@Example.COM ",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if u.Email != "demo@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("expected sanitized password hash")
	}

	stored := repo.byEmail["demo@example.com"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	svc := NewService(newMockUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "super-secret"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "A@B.com", Password: "super-secret"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "super-secret"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "super-secret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "a@b.com" {
		t.Fatalf("unexpected email %q", u.Email)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@b.com", Password: "super-secret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
