package reminder

import (
	"fmt"

	"github.com/spf13/cobra"

	"reminders/internal/app/client"
)

var (
	// JSONOutput is bound to the global --json flag.
	JSONOutput bool
	collection string
)

// RemindersCmd is the parent of every reminders command.
var RemindersCmd = &cobra.Command{
	Use:     "reminders",
	Aliases: []string{"r"},
	Short:   "Manage reminders",
}

func appFrom(cmd *cobra.Command) (*client.App, string, error) {
	app := client.FromContext(cmd.Context())
	if app == nil {
		return nil, "", fmt.Errorf("client is not initialized")
	}

	path, ok := client.Collections[collection]
	if !ok {
		return nil, "", fmt.Errorf("unknown collection %q, use v1 or v2", collection)
	}

	return app, path, nil
}

func init() {
	RemindersCmd.PersistentFlags().StringVarP(&collection, "collection", "c", "v1", "route family: v1 or v2")

	RemindersCmd.AddCommand(listCmd)
	RemindersCmd.AddCommand(createCmd)
	RemindersCmd.AddCommand(updateCmd)
	RemindersCmd.AddCommand(deleteCmd)
	RemindersCmd.AddCommand(bulkCmd)
}
