package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloomcal/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.entryService.ListEntries(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	response := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, newEntryResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.repositories.Entries.FindByUserAndDate(c.UserContext(), user.ID, formatDay(day))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entry")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "entry not found")
	}
	return c.JSON(newEntryResponse(entry))
}

// SaveEntry stores the request body as the raw document for the day. The
// optional source query parameter tags where the document came from.
func (handler *Handler) SaveEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	document := map[string]any{}
	if err := c.BodyParser(&document); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.entryService.SaveEntry(c.UserContext(), user.ID, c.Params("date"), document, c.Query("source"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryDateInvalid):
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		case errors.Is(err, services.ErrEntryDocumentEmpty):
			return apiError(c, fiber.StatusBadRequest, "entry is empty")
		case errors.Is(err, services.ErrEntryDateMismatch):
			return apiError(c, fiber.StatusBadRequest, "entry date does not match")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
		}
	}
	return c.JSON(newEntryResponse(entry))
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.entryService.DeleteEntry(c.UserContext(), user.ID, c.Params("date")); err != nil {
		if errors.Is(err, services.ErrEntryDateInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(fiber.Map{"ok": true})
}
