package models

import "time"

// User owns a set of entries. Emails are stored normalized; uniqueness is
// enforced on lower(trim(email)) by the schema.
type User struct {
	ID                uint   `gorm:"primaryKey"`
	Email             string `gorm:"not null"`
	PasswordHash      string `gorm:"not null"`
	PasswordChangedAt *time.Time
	CreatedAt         time.Time `gorm:"not null"`
}

// SessionRevoked reports whether a session issued at issuedAt predates the
// last password change.
func (user User) SessionRevoked(issuedAt time.Time) bool {
	if user.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(user.PasswordChangedAt.Truncate(time.Second))
}
