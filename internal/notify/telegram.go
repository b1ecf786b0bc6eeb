package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramPusher mirrors in-app notifications to a user's linked Telegram
// chat.
type TelegramPusher struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramPusher(token string) (*TelegramPusher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramPusher{bot: bot}, nil
}

func (p *TelegramPusher) Push(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("push to chat %d: %w", chatID, err)
	}
	return nil
}
