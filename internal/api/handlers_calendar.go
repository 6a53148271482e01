package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloomcal/internal/services"
)

type computeInput struct {
	Entries []services.RawRecord `json:"entries"`
}

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	model := handler.calendarService.Initialize(c.UserContext(), user.ID, services.InitOptions{Now: handler.today()})
	return c.JSON(newCyclesResponse(model))
}

// ComputeCycles runs the engine over the posted documents without touching
// the stored entries.
func (handler *Handler) ComputeCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input computeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Entries == nil {
		input.Entries = []services.RawRecord{}
	}

	model := handler.calendarService.Initialize(c.UserContext(), user.ID, services.InitOptions{
		Entries: input.Entries,
		Now:     handler.today(),
	})
	return c.JSON(newCyclesResponse(model))
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	count, err := parseCountQuery(c.Query("count"), handler.predictionCount)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid count")
	}

	today := handler.today()
	model := handler.calendarService.Initialize(c.UserContext(), user.ID, services.InitOptions{Now: today})

	var view services.ViewState
	switch strings.ToLower(strings.TrimSpace(c.Query("view", "month"))) {
	case "month":
		month, err := services.ParseMonthValue(c.Query("month"), today)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid month")
		}
		view = services.NewMonthView(month)
	case "cycle":
		view = services.NewCycleView(model)
		if raw := strings.TrimSpace(c.Query("cycle")); raw != "" {
			index, err := strconv.Atoi(raw)
			if err != nil || index < 0 || index >= len(model.Cycles) {
				return apiError(c, fiber.StatusBadRequest, "invalid cycle")
			}
			view.CycleIndex = index
		}
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid view")
	}

	calendar := services.BuildCalendar(model, view, today, count)
	return c.JSON(newCalendarResponse(view, len(model.Cycles), calendar))
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDisplayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	count, err := parseCountQuery(c.Query("count"), handler.predictionCount)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid count")
	}

	model := handler.calendarService.Initialize(c.UserContext(), user.ID, services.InitOptions{Now: handler.today()})
	marks := services.ProjectFutureCycles(model.Averages, count, from, to)
	return c.JSON(fiber.Map{
		"from":      formatDay(from),
		"to":        formatDay(to),
		"predicted": newMarkResponses(marks),
	})
}

func (handler *Handler) GetToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := handler.today()
	model := handler.calendarService.Initialize(c.UserContext(), user.ID, services.InitOptions{Now: today})
	summary := services.DescribeToday(model, today)

	response := todayResponse{Date: formatDay(today), Phase: summary.Phase}
	if summary.CycleDay > 0 {
		cycleDay := summary.CycleDay
		response.CycleDay = &cycleDay
	}
	if summary.HasOvulation {
		dpo := summary.DaysPastOvulation
		response.DaysPastOvulation = &dpo
	}
	if next, ok := services.NextPeriodStart(model.Averages, today); ok {
		response.NextPeriod = optionalDay(next)
	}
	return c.JSON(response)
}
