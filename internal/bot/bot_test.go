package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absencehub/internal/i18n"
	"absencehub/internal/models"
	"absencehub/internal/repository"
	"absencehub/internal/service"
)

type fakeReader struct {
	absences []models.Absence
	filters  []repository.AbsenceFilter
	err      error
}

func (f *fakeReader) List(_ context.Context, filter repository.AbsenceFilter) ([]models.Absence, error) {
	f.filters = append(f.filters, filter)
	return append([]models.Absence(nil), f.absences...), f.err
}

func (f *fakeReader) Statistics(_ context.Context, filter repository.AbsenceFilter) (*service.Statistics, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return &service.Statistics{TotalDays: 5.5, UniqueEmployees: 2, ByType: map[string]float64{"Urlaub": 5, "Home Office": 0.5}}, nil
}

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func newTestHandler(reader *fakeReader) (*Handler, *fakeSender) {
	sender := &fakeSender{}
	h := NewHandler(sender, reader, "en")
	h.now = func() time.Time { return time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC) }
	return h, sender
}

var sample = []models.Absence{
	{ServiceAccount: "s.john.doe", EmployeeFullname: "John Doe", AbsenceType: "Urlaub", StartDate: "2025-01-06", EndDate: "2025-01-10"},
	{ServiceAccount: "s.jane.roe", AbsenceType: "Home Office", StartDate: "2025-01-08", EndDate: "2025-01-08", IsHalfDay: true},
	{ServiceAccount: "s.jane.roe", AbsenceType: "Krankheit", StartDate: "2025-01-02", EndDate: "2025-01-03"},
}

func TestToday(t *testing.T) {
	reader := &fakeReader{absences: sample}
	h, _ := newTestHandler(reader)

	reply := h.Reply(context.Background(), "today", "")
	assert.Equal(t, "Absent on 2025-01-08:\n2025-01-06 – 2025-01-10: John Doe, Vacation\n2025-01-08 (½): s.jane.roe, Home Office", reply)
	assert.Equal(t, "2025-01", reader.filters[0].Month)

	reader.absences = nil
	assert.Equal(t, "Nobody is absent on 2025-01-08.", h.Reply(context.Background(), "today", ""))
}

func TestMonth(t *testing.T) {
	reader := &fakeReader{absences: sample}
	h, _ := newTestHandler(reader)

	reply := h.Reply(context.Background(), "month", "2025-01")
	assert.Contains(t, reply, "Absences in 2025-01:\n2025-01-02 – 2025-01-03: s.jane.roe, Sick Leave")
	assert.Equal(t, "Usage: /month YYYY-MM", h.Reply(context.Background(), "month", "January"))
}

func TestWho(t *testing.T) {
	reader := &fakeReader{absences: sample}
	h, _ := newTestHandler(reader)

	reply := h.Reply(context.Background(), "who", "s.jane.roe")
	assert.Equal(t, "2025-01-08 (½): s.jane.roe, Home Office", reply)
	assert.Equal(t, "s.jane.roe", reader.filters[0].ServiceAccount)

	assert.Equal(t, "Usage: /who s.firstname.lastname", h.Reply(context.Background(), "who", "jane"))
	assert.Equal(t, "No upcoming absences for s.max.mustermann.", h.Reply(context.Background(), "who", "s.max.mustermann"))
}

func TestStats(t *testing.T) {
	reader := &fakeReader{}
	h, _ := newTestHandler(reader)

	reply := h.Reply(context.Background(), "stats", "")
	assert.Equal(t, "Total days: 5.5\nEmployees: 2\nHome Office: 0.5\nVacation: 5", reply)

	assert.Equal(t, "Usage: /stats [YYYY-MM]", h.Reply(context.Background(), "stats", "13"))
	h.Reply(context.Background(), "stats", "2025-02")
	assert.Equal(t, "2025-02", reader.filters[len(reader.filters)-1].Month)
}

func TestReplyErrorsAndUnknown(t *testing.T) {
	reader := &fakeReader{err: errors.New("db down")}
	h, _ := newTestHandler(reader)

	assert.Equal(t, "Something went wrong. Please try again.", h.Reply(context.Background(), "today", ""))
	assert.Contains(t, h.Reply(context.Background(), "nope", ""), "Unknown command")
	assert.Contains(t, h.Reply(context.Background(), "help", ""), "/today")
}

func TestHandleUpdates(t *testing.T) {
	reader := &fakeReader{absences: sample}
	h, sender := newTestHandler(reader)

	updates := make(chan tgbotapi.Update, 3)
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     "/help",
		Chat:     &tgbotapi.Chat{ID: 42},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}},
	}}
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 42}}}
	updates <- tgbotapi.Update{}
	close(updates)

	h.HandleUpdates(context.Background(), updates)

	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, i18n.T("en", "bot.help"), msg.Text)
}

func TestRepliesFollowLanguage(t *testing.T) {
	reader := &fakeReader{absences: sample}
	h, _ := newTestHandler(reader)
	h.lang = "de"

	assert.Equal(t, "Abwesend am 2025-01-08:\n2025-01-06 – 2025-01-10: John Doe, Urlaub\n2025-01-08 (½): s.jane.roe, Home Office",
		h.Reply(context.Background(), "today", ""))
	assert.Equal(t, "Aufruf: /month JJJJ-MM", h.Reply(context.Background(), "month", "Januar"))
	assert.Equal(t, "Aufruf: /who s.vorname.nachname", h.Reply(context.Background(), "who", "jane"))
	assert.Contains(t, h.Reply(context.Background(), "help", ""), "Verfügbare Befehle")
	assert.Contains(t, h.Reply(context.Background(), "nope", ""), "Unbekannter Befehl")
	assert.Equal(t, "Tage gesamt: 5.5\nMitarbeiter: 2\nHome Office: 0.5\nUrlaub: 5", h.Reply(context.Background(), "stats", ""))

	reader.absences = nil
	assert.Equal(t, "Am 2025-01-08 ist niemand abwesend.", h.Reply(context.Background(), "today", ""))

	reader.err = errors.New("db down")
	assert.Equal(t, "Etwas ist schiefgelaufen. Bitte versuchen Sie es erneut.", h.Reply(context.Background(), "today", ""))
}
