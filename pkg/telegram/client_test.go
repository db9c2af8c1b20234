package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absencehub/internal/i18n"
	"absencehub/internal/models"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

var vacation = &models.Absence{
	ServiceAccount:   "s.john.doe",
	EmployeeFullname: "John Doe",
	AbsenceType:      "Urlaub",
	StartDate:        "2025-01-06",
	EndDate:          "2025-01-10",
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "New absence: John Doe, s.john.doe (Urlaub) 2025-01-06 – 2025-01-10",
		Message(i18n.English, models.ActionCreate, vacation))
	assert.Equal(t, "Abwesenheit entfernt: John Doe, s.john.doe (Urlaub) 2025-01-06 – 2025-01-10",
		Message(i18n.German, models.ActionDelete, vacation))
	assert.Empty(t, Message(i18n.English, "PURGE", vacation))

	anonymous := *vacation
	anonymous.EmployeeFullname = ""
	assert.Contains(t, Message(i18n.English, models.ActionUpdate, &anonymous), "changed: s.john.doe (Urlaub)")
}

func TestClientAbsenceChanged(t *testing.T) {
	sender := &fakeSender{}
	c := &Client{Bot: sender, ChatID: -100, Lang: i18n.English}

	require.NoError(t, c.AbsenceChanged(context.Background(), models.ActionCreate, vacation))
	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100), msg.ChatID)
	assert.Contains(t, msg.Text, "s.john.doe")

	require.NoError(t, c.AbsenceChanged(context.Background(), "PURGE", vacation))
	assert.Len(t, sender.sent, 1)

	sender.err = errors.New("forbidden")
	assert.Error(t, c.AbsenceChanged(context.Background(), models.ActionDelete, vacation))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.AbsenceChanged(ctx, models.ActionCreate, vacation), context.Canceled)
}
