package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Local user database with sessions
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Library
		Tasks
		Auth
		Overdue
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Driver   Driver
		Path     string // SQLite file, ":memory:" for tests
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
		LogLevel string // silent, error, warn, info
	}

	Library struct {
		LoanPeriodDays int
		BorrowLimit    int
		TimeZone       string // IANA name used to decide what "today" is
	}

	Tasks struct {
		Enabled         bool
		DBPath          string // queue database when the library does not live in SQLite
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}

	Overdue struct {
		ScanEnabled  bool
		ScanSchedule string // Cron format: "0 8 * * *" = daily at 08:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", 5432)
	v.SetDefault("database_user", "postgres")
	v.SetDefault("database_password", "")
	v.SetDefault("database_name", "smartlibrary")
	v.SetDefault("database_sslmode", "disable")
	v.SetDefault("database_log_level", "warn")

	v.SetDefault("library_loan_period_days", DefaultLoanPeriodDays)
	v.SetDefault("library_borrow_limit", DefaultBorrowLimit)
	v.SetDefault("library_time_zone", "UTC")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_db_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "12h") // One working day
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_secure_cookies", true)

	v.SetDefault("overdue_scan_enabled", true)
	v.SetDefault("overdue_scan_schedule", "0 8 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   Driver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetInt("DATABASE_PORT"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			Name:     v.GetString("DATABASE_NAME"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Library: Library{
			LoanPeriodDays: v.GetInt("LIBRARY_LOAN_PERIOD_DAYS"),
			BorrowLimit:    v.GetInt("LIBRARY_BORROW_LIMIT"),
			TimeZone:       v.GetString("LIBRARY_TIME_ZONE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DBPath:          v.GetString("TASK_DB_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
		Overdue: Overdue{
			ScanEnabled:  v.GetBool("OVERDUE_SCAN_ENABLED"),
			ScanSchedule: v.GetString("OVERDUE_SCAN_SCHEDULE"),
		},
	}
}

// Location resolves the configured library time zone, falling back to UTC.
func (l Library) Location() *time.Location {
	if l.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(l.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
