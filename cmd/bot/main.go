// Package main is the entry point of the homework status bot.
//
// Usage:
//
//	homework-bot            # same as "run"
//	homework-bot run        # poll the API and notify the chat until stopped
//	homework-bot check      # run a single poll cycle and exit
//	homework-bot config     # print the effective configuration
//	homework-bot version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/infra/config"

	"github.com/spf13/cobra"
)

// Version information, set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
)

// Exit codes
const (
	exitFailure     = 1
	exitConfigError = 2
)

var rootCmd = &cobra.Command{
	Use:   "homework-bot",
	Short: "Relays homework review status changes to Telegram",
	Long: `homework-bot polls the Yandex Practicum homework API every RETRY_PERIOD
and sends a Telegram message whenever the status of the latest homework changes.

Required environment (or .env):
  PRACTICUM_TOKEN   API OAuth token
  TELEGRAM_TOKEN    bot token
  TELEGRAM_CHAT_ID  numeric chat ID to notify`,
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "env file(s) to load before reading the environment (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, config.ErrConfig) {
			os.Exit(exitConfigError)
		}
		os.Exit(exitFailure)
	}
}

// loadConfig reads and validates configuration honoring the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := readConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	cfg, err := config.Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "homework-bot %s (commit %s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
