// Package bot answers Telegram chat commands with read-only views of the
// absence data.
package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"absencehub/internal/calendar"
	"absencehub/internal/i18n"
	"absencehub/internal/models"
	"absencehub/internal/repository"
	"absencehub/internal/service"
	"absencehub/internal/validation"
	"absencehub/pkg/telegram"
)

// AbsenceReader is the part of the absence service the bot uses.
type AbsenceReader interface {
	List(ctx context.Context, filter repository.AbsenceFilter) ([]models.Absence, error)
	Statistics(ctx context.Context, filter repository.AbsenceFilter) (*service.Statistics, error)
}

type Handler struct {
	sender   telegram.Sender
	absences AbsenceReader
	lang     string
	now      func() time.Time
	logger   *logrus.Logger
}

func NewHandler(sender telegram.Sender, absences AbsenceReader, lang string) *Handler {
	return &Handler{
		sender:   sender,
		absences: absences,
		lang:     lang,
		now:      time.Now,
		logger:   logrus.StandardLogger(),
	}
}

// HandleUpdates processes messages until updates is closed or ctx is done.
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, open := <-updates:
			if !open {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			h.handleCommand(ctx, update.Message)
		}
	}
}

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if message.From != nil {
		h.logger.Infof("[%s] %s", message.From.UserName, message.Text)
	}

	reply := h.Reply(ctx, message.Command(), strings.TrimSpace(message.CommandArguments()))
	msg := tgbotapi.NewMessage(message.Chat.ID, reply)
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.WithError(err).Warn("Failed to send bot reply")
	}
}

// Reply builds the answer to one command.
func (h *Handler) Reply(ctx context.Context, command, args string) string {
	switch command {
	case "start", "help":
		return i18n.T(h.lang, "bot.help")
	case "today":
		return h.today(ctx)
	case "month":
		return h.month(ctx, args)
	case "who":
		return h.who(ctx, args)
	case "stats":
		return h.stats(ctx, args)
	default:
		return i18n.T(h.lang, "bot.unknownCommand")
	}
}

func (h *Handler) t(key string, args ...any) string {
	if len(args) == 0 {
		return i18n.T(h.lang, key)
	}
	return fmt.Sprintf(i18n.T(h.lang, key), args...)
}

func (h *Handler) today(ctx context.Context) string {
	now := h.now()
	date := now.Format(validation.DateLayout)
	absences, err := h.absences.List(ctx, repository.AbsenceFilter{Month: now.Format("2006-01")})
	if err != nil {
		return h.failed(err)
	}

	var lines []string
	for i := range absences {
		if absences[i].Covers(date) {
			lines = append(lines, h.line(&absences[i]))
		}
	}
	if len(lines) == 0 {
		return h.t("bot.nobodyAbsent", date)
	}
	sort.Strings(lines)
	return h.t("bot.absentOn", date, strings.Join(lines, "\n"))
}

func (h *Handler) month(ctx context.Context, month string) string {
	if month == "" {
		month = h.now().Format("2006-01")
	}
	if _, _, ok := repository.MonthBounds(month); !ok {
		return h.t("bot.usageMonth")
	}

	absences, err := h.absences.List(ctx, repository.AbsenceFilter{Month: month})
	if err != nil {
		return h.failed(err)
	}
	if len(absences) == 0 {
		return h.t("bot.noAbsencesIn", month)
	}

	sort.Slice(absences, func(i, j int) bool { return absences[i].StartDate < absences[j].StartDate })
	lines := make([]string, 0, len(absences))
	for i := range absences {
		lines = append(lines, h.line(&absences[i]))
	}
	return h.t("bot.absencesIn", month, strings.Join(lines, "\n"))
}

func (h *Handler) who(ctx context.Context, account string) string {
	if err := validation.ValidateServiceAccount(account); err != nil {
		return h.t("bot.usageWho")
	}

	today := h.now().Format(validation.DateLayout)
	absences, err := h.absences.List(ctx, repository.AbsenceFilter{ServiceAccount: account})
	if err != nil {
		return h.failed(err)
	}

	var lines []string
	for i := range absences {
		a := &absences[i]
		if strings.EqualFold(a.ServiceAccount, account) && a.EndDate >= today {
			lines = append(lines, h.line(a))
		}
	}
	if len(lines) == 0 {
		return h.t("bot.noUpcoming", account)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func (h *Handler) stats(ctx context.Context, month string) string {
	filter := repository.AbsenceFilter{}
	if month != "" {
		if _, _, ok := repository.MonthBounds(month); !ok {
			return h.t("bot.usageStats")
		}
		filter.Month = month
	}

	stats, err := h.absences.Statistics(ctx, filter)
	if err != nil {
		return h.failed(err)
	}

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString(h.t("bot.stats", stats.TotalDays, stats.UniqueEmployees))
	for _, t := range types {
		fmt.Fprintf(&b, "\n%s: %g", calendar.TypeLabel(t, h.lang), stats.ByType[t])
	}
	return b.String()
}

func (h *Handler) line(a *models.Absence) string {
	who := a.ServiceAccount
	if a.EmployeeFullname != "" {
		who = a.EmployeeFullname
	}
	period := a.StartDate
	if a.EndDate != a.StartDate {
		period += " – " + a.EndDate
	}
	if a.IsHalfDay {
		period += " (½)"
	}
	return fmt.Sprintf("%s: %s, %s", period, who, calendar.TypeLabel(a.AbsenceType, h.lang))
}

func (h *Handler) failed(err error) string {
	h.logger.WithError(err).Error("Bot command failed")
	return h.t("error.generic")
}
