package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloomcal/internal/db"
	"github.com/terraincognita07/bloomcal/internal/services"
	"gorm.io/gorm"
)

type Config struct {
	SecretKey       string
	Location        *time.Location
	CookieSecure    bool
	PreferredSource string
	PredictionCount int
	Now             func() time.Time
}

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	cookieSecure    bool
	predictionCount int
	now             func() time.Time
	loginLimiter    *attemptLimiter

	repositories    *db.Repositories
	authService     *services.AuthService
	entryService    *services.EntryService
	calendarService *services.CalendarService
}

func NewHandler(database *gorm.DB, config Config) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	predictionCount := config.PredictionCount
	if predictionCount < 0 {
		predictionCount = services.DefaultPredictionCount
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:              database,
		secretKey:       []byte(config.SecretKey),
		location:        location,
		cookieSecure:    config.CookieSecure,
		predictionCount: predictionCount,
		now:             now,
		loginLimiter:    newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		repositories:    repositories,
		authService:     services.NewAuthService(repositories.Users),
		entryService:    services.NewEntryService(repositories.Entries, config.PreferredSource),
		calendarService: services.NewCalendarService(repositories.Entries, config.PreferredSource),
	}, nil
}

// today is the handler's local calendar day expressed as a UTC date.
func (handler *Handler) today() time.Time {
	return services.LocalDay(handler.now(), handler.location)
}
