package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"absencehub/internal/i18n"
	"absencehub/internal/models"
)

// Sender is the part of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client posts absence changes to one Telegram chat.
type Client struct {
	Bot    Sender
	ChatID int64
	Lang   string

	api *tgbotapi.BotAPI
}

func NewClient(token string, chatID int64, lang string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Authorized on account %s", bot.Self.UserName)

	return &Client{
		Bot:    bot,
		ChatID: chatID,
		Lang:   lang,
		api:    bot,
	}, nil
}

// Updates starts long polling for chat commands. It returns nil for clients
// not created by NewClient.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	if c.api == nil {
		return nil
	}
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	return c.api.GetUpdatesChan(updateConfig)
}

// StopUpdates ends long polling started by Updates.
func (c *Client) StopUpdates() {
	if c.api != nil {
		c.api.StopReceivingUpdates()
	}
}

// AbsenceChanged sends a one-line message describing the change.
func (c *Client) AbsenceChanged(ctx context.Context, action string, absence *models.Absence) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text := Message(c.Lang, action, absence)
	if text == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(c.ChatID, text)
	if _, err := c.Bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// Message formats the notification for action, or "" for unknown actions.
func Message(lang, action string, absence *models.Absence) string {
	var key string
	switch action {
	case models.ActionCreate:
		key = "notify.created"
	case models.ActionUpdate:
		key = "notify.updated"
	case models.ActionDelete:
		key = "notify.deleted"
	default:
		return ""
	}

	who := absence.ServiceAccount
	if absence.EmployeeFullname != "" {
		who = fmt.Sprintf("%s, %s", absence.EmployeeFullname, absence.ServiceAccount)
	}
	return fmt.Sprintf(i18n.T(lang, key), who, absence.AbsenceType, absence.StartDate, absence.EndDate)
}
