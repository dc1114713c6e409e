package tasks

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/smartlibrary/internal/config"
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// ConfigFrom fills a Config from application settings, keeping defaults for
// anything unset.
func ConfigFrom(cfg config.Tasks) Config {
	c := DefaultConfig()
	if cfg.Workers > 0 {
		c.Workers = cfg.Workers
	}
	if cfg.ReleaseAfter > 0 {
		c.ReleaseAfter = cfg.ReleaseAfter
	}
	if cfg.CleanupInterval > 0 {
		c.CleanupInterval = cfg.CleanupInterval
	}
	return c
}

// DBPath picks the SQLite file for the queue. Next to a file-backed SQLite
// library database it is "<name>-tasks<ext>"; otherwise the configured path.
func DBPath(db config.Database, tasks config.Tasks) string {
	if db.Driver == config.DriverSQLite && db.Path != "" && !strings.Contains(db.Path, ":memory:") {
		dir := filepath.Dir(db.Path)
		base := filepath.Base(db.Path)
		ext := filepath.Ext(base)
		return filepath.Join(dir, strings.TrimSuffix(base, ext)+"-tasks"+ext)
	}
	if tasks.DBPath != "" {
		return tasks.DBPath
	}
	return config.DefaultTasksDatabasePath
}
