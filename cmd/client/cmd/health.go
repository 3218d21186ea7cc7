package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"reminders/internal/app/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up and accepts the token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := app.HealthCheck(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("OK")
		return nil
	},
}
