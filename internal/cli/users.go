package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/bloomcal/internal/db"
	"github.com/terraincognita07/bloomcal/internal/security"
	"github.com/terraincognita07/bloomcal/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const generatedPasswordLength = 16

// RunCreateUserCommand registers an account. An empty password is replaced
// with a generated one that is printed once.
func RunCreateUserCommand(dbPath string, email string, password string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	generated := password == ""
	if generated {
		password, err = security.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
	}

	authService := services.NewAuthService(db.NewUserRepository(database))
	user, err := authService.RegisterUser(email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return fmt.Errorf("invalid email address %q", email)
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return fmt.Errorf("user %s already exists", email)
		case errors.Is(err, services.ErrWeakPassword):
			return errors.New("password must be at least 8 characters and mix upper case, lower case and digits")
		case errors.Is(err, services.ErrPasswordTooLong):
			return errors.New("password must not exceed 72 bytes")
		default:
			return fmt.Errorf("create user: %w", err)
		}
	}

	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Email, user.ID)
	if generated {
		fmt.Fprintf(out, "Generated password: %s\n", password)
	}
	return nil
}

// RunResetPasswordCommand replaces the password for email with a generated one.
func RunResetPasswordCommand(dbPath string, email string, out io.Writer) error {
	normalizedEmail, err := services.NormalizeEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	temporaryPassword, err := security.GeneratePassword(generatedPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	updated, err := db.NewUserRepository(database).UpdatePassword(normalizedEmail, string(passwordHash), time.Now())
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if !updated {
		return fmt.Errorf("user %s not found", normalizedEmail)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}

// RunDeleteUserCommand removes the account and every entry it owns.
func RunDeleteUserCommand(dbPath string, email string, out io.Writer) error {
	normalizedEmail, err := services.NormalizeEmail(email)
	if err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}
	if err := users.DeleteAccount(user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	fmt.Fprintf(out, "Deleted user %s\n", normalizedEmail)
	return nil
}

func findUserID(database *gorm.DB, email string) (uint, error) {
	normalizedEmail, err := services.NormalizeEmail(email)
	if err != nil {
		return 0, fmt.Errorf("invalid email address %q", email)
	}
	user, err := db.NewUserRepository(database).FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %s not found", normalizedEmail)
		}
		return 0, fmt.Errorf("load user: %w", err)
	}
	return user.ID, nil
}
