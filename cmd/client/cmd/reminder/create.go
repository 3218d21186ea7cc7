package reminder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reminders/internal/domain/reminder"
)

var (
	title    string
	due      uint64
	dueIn    time.Duration
	priority uint64
	assignee string
	id       string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a reminder",
	Example: `  remindctl reminders create --title "Walk the dog" --in 2h
  remindctl reminders create --title "Pay rent" --due 1735689600 --assignee sam`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, path, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.CreateReminder(cmd.Context(), path, fromFlags(cmd)); err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}

		fmt.Println("Created reminder")
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace a reminder",
	Long:  "Replaces every field of the reminder with the given id. Fields left out are reset.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, path, err := appFrom(cmd)
		if err != nil {
			return err
		}

		r := fromFlags(cmd)
		r.ID = id

		if err := app.UpdateReminder(cmd.Context(), path, r); err != nil {
			return fmt.Errorf("update reminder: %w", err)
		}

		fmt.Println("Updated reminder")
		return nil
	},
}

func fromFlags(cmd *cobra.Command) reminder.Reminder {
	r := reminder.Reminder{
		Title:    title,
		Due:      due,
		Priority: priority,
	}
	if dueIn > 0 {
		r.Due = uint64(time.Now().Add(dueIn).Unix())
	}
	if cmd.Flags().Changed("assignee") {
		r.Assignee = reminder.StringPtr(assignee)
	}
	return r
}

func reminderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&title, "title", "t", "", "reminder title")
	cmd.Flags().Uint64Var(&due, "due", 0, "due time, unix seconds")
	cmd.Flags().DurationVar(&dueIn, "in", 0, "due time relative to now, e.g. 90m")
	cmd.Flags().Uint64VarP(&priority, "priority", "p", 0, "priority")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "assignee")
	cmd.MarkFlagsMutuallyExclusive("due", "in")
	_ = cmd.MarkFlagRequired("title")
}

func init() {
	reminderFlags(createCmd)
	reminderFlags(updateCmd)

	updateCmd.Flags().StringVar(&id, "id", "", "id of the reminder")
	_ = updateCmd.MarkFlagRequired("id")
}
