package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/bloomcal/internal/models"
	"gorm.io/gorm"
)

type stubAuthUserRepository struct {
	users  map[string]models.User
	nextID uint
	err    error
}

func newStubAuthUserRepository() *stubAuthUserRepository {
	return &stubAuthUserRepository{users: make(map[string]models.User), nextID: 1}
}

func (repo *stubAuthUserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	if repo.err != nil {
		return false, repo.err
	}
	_, ok := repo.users[email]
	return ok, nil
}

func (repo *stubAuthUserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	if repo.err != nil {
		return models.User{}, repo.err
	}
	user, ok := repo.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *stubAuthUserRepository) FindByID(userID uint) (models.User, error) {
	for _, user := range repo.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubAuthUserRepository) Create(user *models.User) error {
	user.ID = repo.nextID
	repo.nextID++
	repo.users[user.Email] = *user
	return nil
}

func TestAuthServiceRegisterAndAuthenticate(t *testing.T) {
	service := NewAuthService(newStubAuthUserRepository())

	user, err := service.RegisterUser("  Owner@Example.com ", "StrongPass1")
	if err != nil {
		t.Fatalf("RegisterUser() unexpected error: %v", err)
	}
	if user.Email != "owner@example.com" || user.PasswordHash == "StrongPass1" {
		t.Fatalf("unexpected registered user %+v", user)
	}

	if _, err := service.RegisterUser("owner@example.com", "StrongPass1"); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	authenticated, err := service.Authenticate("OWNER@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, authenticated.ID)
	}

	if _, err := service.Authenticate("owner@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("missing@example.com", "StrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	service := NewAuthService(newStubAuthUserRepository())

	if _, err := service.RegisterUser("not-an-email", "StrongPass1"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := service.RegisterUser("owner@example.com", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	failing := newStubAuthUserRepository()
	failing.err = errors.New("database is locked")
	if _, err := NewAuthService(failing).RegisterUser("owner@example.com", "StrongPass1"); !errors.Is(err, ErrUserLookupFailed) {
		t.Fatalf("expected ErrUserLookupFailed, got %v", err)
	}
	if _, err := NewAuthService(failing).Authenticate("owner@example.com", "StrongPass1"); !errors.Is(err, ErrUserLookupFailed) {
		t.Fatalf("expected ErrUserLookupFailed on authenticate, got %v", err)
	}
}
