package reporter

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-recruitart-client/internal/models"
)

// Telegram pushes watcher findings (new matching jobs, unread platform
// notifications) to a chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *Telegram) SendJob(job models.Job, score int) error {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n", html.EscapeString(job.Title), html.EscapeString(job.CompanyName))
	if job.Location != "" {
		text += fmt.Sprintf("📍 %s\n", html.EscapeString(job.Location))
	}
	if job.SalaryRange != "" {
		text += fmt.Sprintf("💰 %s\n", html.EscapeString(job.SalaryRange))
	}
	if job.SkillsRequired != "" {
		text += fmt.Sprintf("🛠 %s\n", html.EscapeString(job.SkillsRequired))
	}
	text += fmt.Sprintf("🤖 Match Score: %d/10", score)
	return t.send(text)
}

func (t *Telegram) SendNotification(n models.Notification) error {
	text := fmt.Sprintf("🔔 <b>%s</b>\n%s",
		html.EscapeString(n.Title), html.EscapeString(n.Message))
	return t.send(text)
}

func (t *Telegram) SendStatus(message string) error {
	return t.send("ℹ️ " + html.EscapeString(message))
}

func (t *Telegram) SendError(errReq error) error {
	return t.send(fmt.Sprintf("⚠️ <b>Watcher Error</b>:\n%s", html.EscapeString(errReq.Error())))
}
