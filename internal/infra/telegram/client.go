// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// NewBot creates a send-only bot. It runs offline so a flaky network at
// startup does not stop the poll loop; a bad token surfaces on the first send.
// An empty apiURL selects the public Bot API server.
func NewBot(token, apiURL string, timeout time.Duration) (*telebot.Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  newHTTPClient(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return bot, nil
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	_, err := tba.bot.Send(recipient(chatID), text, options)
	return err
}

// chatRecipient addresses a chat by its public username, e.g. "@my_channel".
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

func recipient(chatID string) telebot.Recipient {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return telebot.ChatID(id)
	}
	return chatRecipient(chatID)
}
