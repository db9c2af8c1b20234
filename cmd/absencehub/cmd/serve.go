package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"absencehub/internal/bot"
	"absencehub/internal/config"
	"absencehub/internal/database"
	"absencehub/internal/handler"
	"absencehub/internal/models"
	"absencehub/internal/repository"
	"absencehub/internal/scheduler"
	"absencehub/internal/service"
	"absencehub/pkg/holidays"
	"absencehub/pkg/telegram"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	Long: `Starts the HTTP server on HTTP_ADDR.

When TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are set, absence changes are
posted to the chat and the bot answers /today, /month, /who and /stats.
When AUDIT_RETENTION_DAYS is set, old audit entries are purged on
AUDIT_PURGE_CRON.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type services struct {
	absences     *service.AbsenceService
	absenceTypes *service.AbsenceTypeService
	audit        *service.AuditService
}

func openStore() (*gorm.DB, *repository.Store, error) {
	db, err := database.Open(cfg.DatabaseURL, cfg.IsDebug())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	store, err := repository.NewStore(db)
	if err != nil {
		database.Close(db)
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, store, nil
}

func newServices(store *repository.Store, notifier service.Notifier) services {
	types := service.NewAbsenceTypeService(store.AbsenceTypes, store.Absences)
	return services{
		absences:     service.NewAbsenceService(store, types, notifier),
		absenceTypes: types,
		audit:        service.NewAuditService(store.AuditLogs),
	}
}

// seedTypes loads the optional seed file and inserts it into an empty table.
func seedTypes(ctx context.Context, types *service.AbsenceTypeService) (int, error) {
	var defs []models.AbsenceType
	if cfg.AbsenceTypesFile != "" {
		file, err := config.LoadAbsenceTypes(cfg.AbsenceTypesFile)
		if err != nil {
			return 0, err
		}
		for _, d := range file {
			defs = append(defs, models.AbsenceType{
				Name:     d.Name,
				NameDE:   d.NameDE,
				NameEN:   d.NameEN,
				Color:    d.Color,
				IsActive: d.IsActive(),
			})
		}
	}
	for i := range defs {
		if defs[i].Color == "" {
			defs[i].Color = models.DefaultAbsenceTypeColor
		}
	}
	return types.SeedDefaults(ctx, defs)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.Warnf("Error closing database: %v", err)
		}
	}()

	hol, err := holidays.Load(cfg.HolidayFiles...)
	if err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}

	var notifier service.Notifier
	var tg *telegram.Client
	if cfg.NotificationsEnabled() {
		tg, err = telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, cfg.DefaultLanguage)
		if err != nil {
			logrus.WithError(err).Warn("Telegram disabled")
			tg = nil
		} else {
			notifier = tg
		}
	}

	svc := newServices(store, notifier)

	if n, err := seedTypes(ctx, svc.absenceTypes); err != nil {
		return fmt.Errorf("seed absence types: %w", err)
	} else if n > 0 {
		logrus.Infof("Seeded %d absence types", n)
	}

	if tg != nil {
		chat := bot.NewHandler(tg.Bot, svc.absences, cfg.DefaultLanguage)
		go chat.HandleUpdates(ctx, tg.Updates())
		defer tg.StopUpdates()
	}

	sched := scheduler.New()
	if cfg.AuditPurgeEnabled() {
		if err := sched.AddAuditPurge(cfg.AuditPurgeCron, cfg.AuditRetentionDays, svc.audit); err != nil {
			return err
		}
	}
	sched.Start()

	h := handler.NewHandler(svc.absences, svc.absenceTypes, svc.audit, hol, cfg.DefaultLanguage)
	e := handler.NewServer(h, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("AbsenceHub listening on %s", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logrus.Info("Shutting down...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	sched.Stop(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP server did not stop cleanly")
	}

	logrus.Info("Server stopped gracefully")
	return nil
}
