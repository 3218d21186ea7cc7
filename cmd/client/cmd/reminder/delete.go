package reminder

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, path, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.DeleteReminder(cmd.Context(), path, args[0]); err != nil {
			return fmt.Errorf("delete reminder: %w", err)
		}

		fmt.Println("Deleted reminder")
		return nil
	},
}
