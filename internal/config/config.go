package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultHTTPAddr    = ":5000"
	defaultDatabaseURL = "absences.db"
	defaultAPIURL      = "http://localhost:5000"
)

type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	CORSOrigins      []string
	DefaultLanguage  string
	AbsenceTypesFile string
	HolidayFiles     []string
	LogLevel         string

	TelegramToken  string
	TelegramChatID int64

	AuditRetentionDays int64
	AuditPurgeCron     string

	APIURL           string
	APIFallbackPorts []int
}

var instance *Config
var once sync.Once

// GetConfig loads the configuration once per process. A missing .env file
// is fine, the environment alone is enough.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("error loading env variables: %s", err.Error())
		}
		instance = Load()
	})

	return instance
}

// Load reads the configuration from the current environment.
func Load() *Config {
	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:      getEnv("DATABASE_URL", defaultDatabaseURL),
		CORSOrigins:      getEnvAsList("CORS_ORIGINS", []string{"*"}),
		DefaultLanguage:  getEnv("DEFAULT_LANGUAGE", "en"),
		AbsenceTypesFile: getEnv("ABSENCE_TYPES_FILE", ""),
		HolidayFiles:     getEnvAsList("HOLIDAY_FILES", nil),
		LogLevel:         getEnv("LOG_LEVEL", "info"),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvAsInt("TELEGRAM_CHAT_ID", 0),

		AuditRetentionDays: getEnvAsInt("AUDIT_RETENTION_DAYS", 0),
		AuditPurgeCron:     getEnv("AUDIT_PURGE_CRON", "@daily"),

		APIURL:           getEnv("API_URL", defaultAPIURL),
		APIFallbackPorts: getEnvAsPorts("API_FALLBACK_PORTS", []int{5001, 5002, 8000, 8080}),
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		logrus.Warn("TELEGRAM_BOT_TOKEN is set without TELEGRAM_CHAT_ID, notifications are disabled")
	}

	return cfg
}

// IsDebug reports whether SQL statements should be logged.
func (c *Config) IsDebug() bool {
	return c.Env == "development" && getEnvAsBool("DB_DEBUG", false)
}

// NotificationsEnabled reports whether both Telegram settings are present.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// AuditPurgeEnabled reports whether old audit entries should be removed.
func (c *Config) AuditPurgeEnabled() bool {
	return c.AuditRetentionDays > 0
}

// ApplyLogLevel configures the standard logrus logger.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsList(name string, defaultVal []string) []string {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal
	}

	var list []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultVal
	}
	return list
}

func getEnvAsPorts(name string, defaultVal []int) []int {
	items := getEnvAsList(name, nil)
	if items == nil {
		return defaultVal
	}

	ports := make([]int, 0, len(items))
	for _, item := range items {
		port, err := strconv.Atoi(item)
		if err != nil || port <= 0 || port > 65535 {
			logrus.Warnf("ignoring invalid port %q in %s", item, name)
			continue
		}
		ports = append(ports, port)
	}
	return ports
}
