package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-upwork-watcher/internal/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DeliveryResult carries the status reported for one message.
// StatusCode is 200 on success, the Telegram error_code on API errors and 0 when the request never completed.
type DeliveryResult struct {
	StatusCode int
	Err        error
}

func (r DeliveryResult) OK() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewBot prepares a bot for chatID. No request is made until the first send;
// every request is bounded by timeout.
func NewBot(token string, chatID int64, timeout time.Duration) (*Bot, error) {
	return NewBotWithClient(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: timeout})
}

// NewBotWithClient talks to a custom endpoint, formatted like tgbotapi.APIEndpoint.
// Unlike tgbotapi.NewBotAPIWithClient it skips the getMe round trip, so a bad token
// surfaces as a 401 on the first send instead of at startup.
func NewBotWithClient(token, endpoint string, chatID int64, client *http.Client) (*Bot, error) {
	if token == "" {
		return nil, errors.New("failed to init telegram bot: empty token")
	}

	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: client,
		Buffer: 100,
	}
	api.SetAPIEndpoint(endpoint)

	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

var markdownReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

// inside (...) of an inline link only ) and \ need escaping
var linkReplacer = strings.NewReplacer("\\", "\\\\", ")", "\\)")

func escapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

// FormatJob renders title, content and link; the link line is dropped when there is no link
func FormatJob(job scraper.Job) string {
	msgText := fmt.Sprintf("*%s*\n%s", escapeMarkdown(job.Title), escapeMarkdown(job.Content))
	if job.Link != "" {
		msgText += fmt.Sprintf("\n[View Job](%s)", linkReplacer.Replace(job.Link))
	}
	return msgText
}

// Notify sends one job and reports the endpoint's status. It never retries.
func (b *Bot) Notify(ctx context.Context, job scraper.Job) DeliveryResult {
	if err := ctx.Err(); err != nil {
		return DeliveryResult{Err: err}
	}

	msg := tgbotapi.NewMessage(b.chatID, FormatJob(job))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	_, err := b.api.Send(msg)
	return toResult(err)
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}

func toResult(err error) DeliveryResult {
	if err == nil {
		return DeliveryResult{StatusCode: http.StatusOK}
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return DeliveryResult{StatusCode: apiErr.Code, Err: err}
	}
	return DeliveryResult{Err: err}
}
