package sinks

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/teleflash/teleflash/internal/output/report"
	"github.com/teleflash/teleflash/internal/platform/htmlutils"
)

const (
	// MaxMessageSize is Telegram's message length limit in UTF-16 units.
	MaxMessageSize = 4096
	separator      = "━━━━━━━━━━━━━━━━━━━━━━"
)

// BotSender is the part of tgbotapi.BotAPI used for delivery.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts documents to a chat through the Bot API as HTML.
type Telegram struct {
	bot    BotSender
	chatID int64
	logger *zerolog.Logger
}

func NewTelegram(token string, chatID int64, logger *zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot api: %w", err)
	}

	return NewTelegramWithSender(api, chatID, logger), nil
}

func NewTelegramWithSender(bot BotSender, chatID int64, logger *zerolog.Logger) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, logger: logger}
}

func (t *Telegram) Publish(ctx context.Context, doc report.Document) error {
	parts := htmlutils.SplitHTML(TelegramHTML(doc), MaxMessageSize)

	for i, part := range parts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("telegram publish: %w", err)
		}

		msg := tgbotapi.NewMessage(t.chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = !doc.Unfurl

		if _, err := t.bot.Send(msg); err != nil {
			return fmt.Errorf("send part %d to chat %d: %w", i+1, t.chatID, err)
		}
	}

	t.logger.Debug().Int64("chat_id", t.chatID).Int("parts", len(parts)).Msg("telegram message posted")

	return nil
}

// TelegramHTML renders a document as one HTML message body.
func TelegramHTML(doc report.Document) string {
	parts := make([]string, 0, len(doc.Blocks))

	for _, b := range doc.Blocks {
		switch b.Kind {
		case report.BlockHeader:
			parts = append(parts, "<b>"+html.EscapeString(b.Text)+"</b>")
		case report.BlockDivider:
			parts = append(parts, separator)
		case report.BlockContext, report.BlockSection:
			parts = append(parts, htmlutils.FromMrkdwn(b.Text))
		case report.BlockFields:
			for _, f := range b.Fields {
				parts = append(parts, htmlutils.FromMrkdwn(f))
			}
		}
	}

	return strings.Join(parts, "\n\n")
}
