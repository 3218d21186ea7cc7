package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reminders/cmd/client/cmd/reminder"
	"reminders/internal/app/client"
	"reminders/internal/app/client/config"
	"reminders/internal/utils/logger"
)

var (
	serverURL string
	token     string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "remindctl",
	Short: "remindctl - command line client for the reminders API",
	Long: `remindctl lists and edits reminders through the reminders API.

The server address and shared secret come from SERVER_ADDRESS and
AUTH_TOKEN (or a .env file), and can be overridden with --server and
--token. Without a token remindctl asks for one on the terminal.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if token != "" {
		cfg.Token = token
	}
	if cfg.Token == "" {
		if cfg.Token, err = promptToken(); err != nil {
			return err
		}
	}

	log := logger.Discard()
	if debug {
		log = logger.NewTo(os.Stderr, cfg.Env)
	}

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	cmd.SetContext(client.WithApp(cmd.Context(), app))
	return nil
}

func promptToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("AUTH_TOKEN is not set")
	}

	fmt.Fprint(os.Stderr, "Auth token: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server address, host:port")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "shared secret")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log requests to stderr")
	rootCmd.PersistentFlags().BoolVar(&reminder.JSONOutput, "json", false, "print JSON instead of tables")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(reminder.RemindersCmd)
}
