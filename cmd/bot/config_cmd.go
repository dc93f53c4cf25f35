package main

import (
	"fmt"

	"homework_status_bot/internal/infra/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration assembled from .env files, the environment and
defaults, with tokens masked. Exits with code 2 if it is not usable.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configView renders durations as text instead of nanoseconds.
type configView struct {
	PracticumToken    string `yaml:"practicum_token"`
	PracticumEndpoint string `yaml:"practicum_endpoint"`
	TelegramToken     string `yaml:"telegram_token"`
	TelegramChatID    string `yaml:"telegram_chat_id"`
	TelegramAPIURL    string `yaml:"telegram_api_url,omitempty"`
	RetryPeriod       string `yaml:"retry_period"`
	APITimeout        string `yaml:"api_timeout"`
	SendAttempts      uint   `yaml:"send_attempts"`
	SendRetryDelay    string `yaml:"send_retry_delay"`
	LogLevel          string `yaml:"log_level"`
	Environment       string `yaml:"environment"`
	LogFile           string `yaml:"log_file"`
}

func newConfigView(cfg *config.AppConfig) configView {
	red := cfg.Redacted()
	return configView{
		PracticumToken:    red.PracticumToken,
		PracticumEndpoint: red.PracticumEndpoint,
		TelegramToken:     red.TelegramToken,
		TelegramChatID:    red.TelegramChatID,
		TelegramAPIURL:    red.TelegramAPIURL,
		RetryPeriod:       red.RetryPeriod.String(),
		APITimeout:        red.APITimeout.String(),
		SendAttempts:      red.SendAttempts,
		SendRetryDelay:    red.SendRetryDelay.String(),
		LogLevel:          red.LogLevel,
		Environment:       red.Environment,
		LogFile:           red.LogFile,
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(newConfigView(cfg))
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "# config is valid")
	return nil
}
