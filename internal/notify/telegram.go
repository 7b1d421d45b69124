package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ldexchange/jobboard/internal/ingest"
)

// Sender is the part of the bot API Telegram needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts a short run summary to one chat.
type Telegram struct {
	bot    Sender
	chatID int64
}

// NewTelegram authenticates the bot token and returns a reporter for chatID.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return NewTelegramWithSender(bot, chatID), nil
}

// NewTelegramWithSender wraps an existing sender.
func NewTelegramWithSender(bot Sender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// Report implements ingest.Reporter. Runs that added nothing and had no
// failures are not announced.
func (t *Telegram) Report(_ context.Context, s ingest.Summary) error {
	if s.New == 0 && s.FailedPairs == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, SummaryMessage(s))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// SummaryMessage renders s as Telegram HTML.
func SummaryMessage(s ingest.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 <b>L&amp;D job scrape</b> <code>%s</code>\n", html.EscapeString(shortID(s.RunID)))
	fmt.Fprintf(&b, "🆕 New: <b>%d</b>\n", s.New)
	fmt.Fprintf(&b, "🔁 Duplicates: %d\n", s.Duplicate)
	fmt.Fprintf(&b, "🚫 Invalid: %d\n", s.Invalid)
	fmt.Fprintf(&b, "🛑 Bouncer: %d\n", s.Bouncer)
	fmt.Fprintf(&b, "📥 Fetched: %d over %d searches", s.Fetched, s.Pairs)
	if s.FailedPairs > 0 {
		fmt.Fprintf(&b, "\n⚠️ Failed searches: %d", s.FailedPairs)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
