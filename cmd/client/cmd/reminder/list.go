package reminder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"reminders/internal/domain/reminder"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, path, err := appFrom(cmd)
		if err != nil {
			return err
		}

		reminders, err := app.ListReminders(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("list reminders: %w", err)
		}

		if JSONOutput {
			return printJSON(os.Stdout, reminders)
		}
		printTable(os.Stdout, reminders)
		return nil
	},
}

func printJSON(w io.Writer, reminders []reminder.Reminder) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reminders)
}

func printTable(w io.Writer, reminders []reminder.Reminder) {
	if len(reminders) == 0 {
		fmt.Fprintln(w, "No reminders")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Due", "Priority", "Assignee"})
	table.SetAutoWrapText(false)

	for _, r := range reminders {
		assignee := "-"
		if r.Assignee != nil {
			assignee = *r.Assignee
		}
		table.Append([]string{
			r.ID,
			r.Title,
			formatDue(r.Due),
			strconv.FormatUint(r.Priority, 10),
			assignee,
		})
	}

	table.Render()
}

func formatDue(due uint64) string {
	if due == 0 {
		return "-"
	}
	if due > uint64(time.Now().AddDate(1000, 0, 0).Unix()) {
		return strconv.FormatUint(due, 10)
	}
	return time.Unix(int64(due), 0).UTC().Format(time.RFC3339)
}
