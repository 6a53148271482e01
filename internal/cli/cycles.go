package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/terraincognita07/bloomcal/internal/db"
	"github.com/terraincognita07/bloomcal/internal/services"
)

// RunCyclesCommand prints the cycle table computed from the stored entries.
func RunCyclesCommand(ctx context.Context, dbPath string, email string, preferredSource string, now time.Time, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	userID, err := findUserID(database, email)
	if err != nil {
		return err
	}

	calendarService := services.NewCalendarService(db.NewEntryRepository(database), preferredSource)
	model := calendarService.Initialize(ctx, userID, services.InitOptions{
		Now: now,
		OnComputed: func(cycles []services.Cycle) {
			writeCycleTable(out, cycles)
		},
	})

	writeAverages(out, model.Averages)
	today := services.DescribeToday(model, now)
	if today.CycleDay > 0 {
		fmt.Fprintf(out, "Today: cycle day %d, phase %s", today.CycleDay, today.Phase)
		if today.HasOvulation {
			fmt.Fprintf(out, ", %d DPO", today.DaysPastOvulation)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func writeCycleTable(out io.Writer, cycles []services.Cycle) {
	if len(cycles) == 0 {
		fmt.Fprintln(out, "No cycles recorded.")
		return
	}

	writer := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "START\tEND\tLENGTH\tSURGE\tOVULATION\tFERTILE\tLUTEAL")
	for _, cycle := range cycles {
		length := "-"
		luteal := "-"
		if cycle.Completed {
			length = strconv.Itoa(cycle.Length)
			if cycle.LutealLength > 0 {
				luteal = strconv.Itoa(cycle.LutealLength)
			}
		}
		fertile := "-"
		if cycle.HasFertileWindow() {
			fertile = services.DayKey(cycle.FertileStart) + ".." + services.DayKey(cycle.FertileEnd)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			services.DayKey(cycle.PeriodStart),
			services.DayKey(cycle.End),
			length,
			dayOrDash(cycle.SurgeDate),
			dayOrDash(cycle.OvulationDate),
			fertile,
			luteal,
		)
	}
	_ = writer.Flush()
}

func writeAverages(out io.Writer, averages *services.HistoricalAverages) {
	if averages == nil {
		fmt.Fprintln(out, "Averages: not enough history")
		return
	}
	fmt.Fprintf(out, "Averages: cycle %s, fertile offset %s, ovulation offset %s\n",
		intOrDash(averages.AvgCycleLength),
		intOrDash(averages.AvgFertileOffset),
		intOrDash(averages.AvgOvulationOffset),
	)
}

func dayOrDash(day time.Time) string {
	if day.IsZero() {
		return "-"
	}
	return services.DayKey(day)
}

func intOrDash(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}
