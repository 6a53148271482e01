package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloomcal/internal/services"
)

const maxPredictionCount = 24

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDayParam(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	return services.ParseDayKey(value)
}

// parseCountQuery reads an optional non-negative count, falling back when the
// parameter is absent.
func parseCountQuery(raw string, fallback int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 || count > maxPredictionCount {
		return 0, errors.New("invalid count")
	}
	return count, nil
}

func formatDay(day time.Time) string {
	return services.DayKey(day)
}

func optionalDay(day time.Time) *string {
	if day.IsZero() {
		return nil
	}
	value := services.DayKey(day)
	return &value
}
