package models

import "time"

const (
	SourceManual = "manual"
	SourceImport = "import"
)

// Entry is one logged day as it was stored, before normalization. Document keeps
// the raw key/value payload so that legacy encodings survive round trips.
type Entry struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null;uniqueIndex:uidx_entries_user_date"`
	DateKey   string         `gorm:"not null;uniqueIndex:uidx_entries_user_date"`
	Source    string         `gorm:"not null;default:manual"`
	Document  map[string]any `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
