package main

import (
	"context"
	"errors"
	"fmt"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the homework API and notify the chat until stopped",
	RunE:  runRun,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single poll cycle and exit",
	Long: `Run one poll cycle with the regular configuration, without sleeping.

The query window starts RETRY_PERIOD ago, so only recent changes are reported.
Exits non-zero if the cycle failed.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(runCmd, checkCmd)
}

// setup validates configuration, initializes logging and wires the poll service.
func setup(cmd *cobra.Command) (*config.AppConfig, *app.PollService, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		// logger.Init has not run yet, this goes to the logrus standard logger
		logrus.WithError(err).Error("Invalid configuration, the bot cannot start")
		return nil, nil, nil, err
	}

	closer := logger.Init(cfg)
	log := logger.Get()
	log.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"retry_period": cfg.RetryPeriod.String(),
		"chat_id":      cfg.TelegramChatID,
	}).Info("Configuration loaded")

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL, cfg.APITimeout)
	if err != nil {
		_ = closer.Close()
		return nil, nil, nil, err
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, cfg.SendAttempts, cfg.SendRetryDelay, log.WithField("component", "notifier"))
	client := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.APITimeout, log.WithField("component", "practicum"))
	svc := app.NewPollService(client, notifier, cfg.RetryPeriod, log.WithField("component", "poller"))

	return cfg, svc, func() { _ = closer.Close() }, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, svc, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	log := logger.Get()
	sched := scheduler.NewPollScheduler(cfg.RetryPeriod, func(ctx context.Context) {
		_, _ = svc.RunCycle(ctx) // failures are logged and reported inside
	}, log.WithField("component", "scheduler"))

	log.Info("Bot started")
	// SIGINT/SIGTERM cancel the command context
	if err := sched.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Bot shut down gracefully.")
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, svc, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := svc.RunCycle(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "cycle outcome: %s\n", outcome)
	if err != nil {
		return fmt.Errorf("poll cycle failed (%s): %w", app.ErrorKind(err), err)
	}
	return nil
}
