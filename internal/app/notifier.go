package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain

	"github.com/codeGROOVE-dev/retry"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// ErrDelivery is returned when a message could not be delivered to the chat.
var ErrDelivery = fmt.Errorf("message was not delivered")

// Notifier delivers messages to the configured chat. It does not deduplicate;
// that is the poll service's job.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         string
	attempts       uint
	retryDelay     time.Duration
	logger         logrus.FieldLogger
}

func NewNotifier(tc domainTelegram.Client, chatID string, attempts uint, retryDelay time.Duration, logger logrus.FieldLogger) *Notifier {
	if attempts == 0 {
		attempts = 1
	}
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		attempts:       attempts,
		retryDelay:     retryDelay,
		logger:         logger,
	}
}

// Send delivers text, retrying transient failures with a fixed delay.
func (n *Notifier) Send(ctx context.Context, text string) error {
	err := retry.Do(
		func() error {
			return n.telegramClient.SendMessage(n.chatID, text, nil)
		},
		retry.Attempts(n.attempts),
		retry.Delay(n.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			n.logger.WithFields(logrus.Fields{"attempt": attempt + 1, "chat_id": n.chatID}).WithError(err).Warn("Retrying message delivery")
		}),
		retry.RetryIf(isRetryableSendError),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	n.logger.WithField("chat_id", n.chatID).Debug("Message sent")
	return nil
}

// isRetryableSendError rejects Telegram answers that will not change on retry,
// such as a wrong token or an unknown chat.
func isRetryableSendError(err error) bool {
	var apiErr *telebot.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return false
		}
	}
	return true
}
