package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reminders/internal/app/server"
	"reminders/internal/app/server/config"
	"reminders/internal/utils/logger"
)

var rootCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Reminders API server",
	Long: `Serves a CRUD API for reminders kept in a Firebase Realtime Database.

Every route requires "Authorization: Bearer $AUTH_TOKEN". The store is
reached with Google application default credentials, or with STORE_TOKEN
when it is set (e.g. "owner" for the emulator).`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrConfiguration) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env)

	app, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}

func init() {
	rootCmd.Flags().String("addr", "", "listen address (overrides RUN_ADDRESS)")
	rootCmd.Flags().String("env", "", "environment: local, dev or prod (overrides APP_ENV)")

	_ = viper.BindPFlag("run_address", rootCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("app_env", rootCmd.Flags().Lookup("env"))
}
