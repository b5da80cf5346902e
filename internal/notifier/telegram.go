package notifier

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// sender is satisfied by *tgbotapi.BotAPI
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts announcements to a Telegram chat
type TelegramNotifier struct {
	bot    sender
	chatID int64
}

// NewTelegramNotifier authenticates the bot and targets chatID
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, eris.New("notifier: telegram bot token is required")
	}
	if chatID == 0 {
		return nil, eris.New("notifier: telegram chat id is required")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, eris.Wrap(err, "notifier: create telegram bot")
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// Notify sends the announcement for f to the configured chat
func (n *TelegramNotifier) Notify(ctx context.Context, f final.Final) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatAnnouncement(f))
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return eris.Wrapf(err, "notifier: send telegram message for %d", f.Year)
	}
	return nil
}
