package telegram

import "gopkg.in/telebot.v3"

// Client sends messages to a Telegram chat.
// chatID is either a numeric chat ID or a public "@username"; implementations
// must pass it to Telegram unchanged.
type Client interface {
	SendMessage(chatID string, text string, options *telebot.SendOptions) error
}
