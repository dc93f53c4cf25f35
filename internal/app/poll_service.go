// internal/app/poll_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/practicum"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusFetcher returns homework updates newer than fromDate (Unix seconds).
type StatusFetcher interface {
	GetStatuses(ctx context.Context, fromDate int64) (*homework.Response, error)
}

// MessageSender delivers a single text message.
type MessageSender interface {
	Send(ctx context.Context, text string) error
}

// Outcome describes what a poll cycle ended with.
type Outcome string

const (
	OutcomeNotified  Outcome = "notified"  // A new status was delivered
	OutcomeUnchanged Outcome = "unchanged" // Same message as last time, nothing sent
	OutcomeEmpty     Outcome = "empty"     // No homework updates in the window
	OutcomeFailed    Outcome = "failed"
)

const errorMessagePrefix = "Сбой в работе программы: "

// PollService owns the poll cursor and the duplicate suppression state.
// It is not safe for concurrent use; a single loop drives it.
type PollService struct {
	fetcher          StatusFetcher
	sender           MessageSender
	logger           logrus.FieldLogger
	cursor           int64
	lastMessage      string
	lastErrorMessage string
}

// NewPollService starts the cursor one interval in the past.
func NewPollService(fetcher StatusFetcher, sender MessageSender, interval time.Duration, logger logrus.FieldLogger) *PollService {
	return &PollService{
		fetcher: fetcher,
		sender:  sender,
		logger:  logger,
		cursor:  time.Now().Add(-interval).Unix(),
	}
}

// Cursor returns the lower bound of the next query window.
func (s *PollService) Cursor() int64 {
	return s.cursor
}

// RunCycle performs one poll: fetch, advance the cursor, render and deliver.
// Every failure is handled here; the returned error is informational only.
func (s *PollService) RunCycle(ctx context.Context) (Outcome, error) {
	log := s.logger.WithFields(logrus.Fields{"cycle_id": uuid.NewString(), "from_date": s.cursor})
	log.Debug("Starting poll cycle")

	resp, err := s.fetcher.GetStatuses(ctx, s.cursor)
	if err != nil {
		if ctx.Err() != nil {
			log.WithError(err).Info("Poll cycle interrupted by shutdown")
			return OutcomeFailed, err
		}
		s.reportFailure(ctx, log, err)
		return OutcomeFailed, err
	}

	if resp.HasCurrentDate {
		s.cursor = resp.CurrentDate
	} else {
		log.Warn("Response has no usable current_date, keeping cursor")
	}

	latest, ok := resp.Latest()
	if !ok {
		log.Debug("Homework list is empty, nothing to send")
		return OutcomeEmpty, nil
	}

	message, err := homework.ParseStatus(latest)
	if err != nil {
		s.reportFailure(ctx, log, err)
		return OutcomeFailed, err
	}

	return s.notifyStatus(ctx, log, message)
}

// notifyStatus sends message unless it equals the last delivered one.
func (s *PollService) notifyStatus(ctx context.Context, log logrus.FieldLogger, message string) (Outcome, error) {
	if message == s.lastMessage {
		log.Debug("Status unchanged since last notification")
		return OutcomeUnchanged, nil
	}

	if err := s.sender.Send(ctx, message); err != nil {
		// Not reported to the chat: delivery itself is what failed.
		log.WithError(err).Error("Failed to deliver status notification")
		return OutcomeFailed, err
	}

	s.lastMessage = message
	log.WithField("message", message).Info("Status notification delivered")
	return OutcomeNotified, nil
}

// reportFailure logs a recoverable error and relays it to the chat once.
// A failure to relay is only logged.
func (s *PollService) reportFailure(ctx context.Context, log logrus.FieldLogger, err error) {
	message := errorMessagePrefix + err.Error()
	log = log.WithField("error_kind", ErrorKind(err))
	log.WithError(err).Error("Poll cycle failed")

	if message == s.lastErrorMessage {
		log.Debug("Same error already reported, skipping")
		return
	}
	if sendErr := s.sender.Send(ctx, message); sendErr != nil {
		log.WithError(sendErr).Error("Failed to report error to chat")
		return
	}
	s.lastErrorMessage = message
}

// ErrorKind classifies a cycle error for logs.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, practicum.ErrTransport):
		return "transport"
	case errors.Is(err, practicum.ErrHTTPStatus):
		return "http_status"
	case errors.Is(err, homework.ErrShape):
		return "shape"
	case errors.Is(err, homework.ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrDelivery):
		return "delivery"
	default:
		return fmt.Sprintf("unexpected (%T)", err)
	}
}
