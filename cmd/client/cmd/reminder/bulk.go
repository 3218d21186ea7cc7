package reminder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"reminders/internal/domain/reminder"
)

var bulkFile string

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Overwrite the collection from a JSON array",
	Long: `Reads a JSON array of reminders and replaces the whole collection with it.
At most one reminder may come without an id. Use --file - to read stdin.`,
	Example: `  remindctl reminders list --json > backup.json
  remindctl reminders bulk --file backup.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, path, err := appFrom(cmd)
		if err != nil {
			return err
		}

		reminders, err := readReminders(bulkFile)
		if err != nil {
			return err
		}

		if err := app.ReplaceReminders(cmd.Context(), path, reminders); err != nil {
			return fmt.Errorf("replace reminders: %w", err)
		}

		fmt.Printf("Updated reminders (%d)\n", len(reminders))
		return nil
	},
}

func readReminders(name string) ([]reminder.Reminder, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer f.Close()
		r = f
	}

	var reminders []reminder.Reminder
	if err := json.NewDecoder(r).Decode(&reminders); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}

	return reminders, nil
}

func init() {
	bulkCmd.Flags().StringVarP(&bulkFile, "file", "f", "", "JSON file with an array of reminders, - for stdin")
	_ = bulkCmd.MarkFlagRequired("file")
}
