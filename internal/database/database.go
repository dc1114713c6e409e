package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Models lists every table managed by auto-migration, parents first.
var Models = []any{
	&entities.Author{},
	&entities.Book{},
	&entities.Member{},
	&entities.Loan{},
	&entities.BookClub{},
	&entities.MemberClub{},
	&entities.User{},
	&entities.OverdueNotice{},
}

type Database struct {
	DB     *gorm.DB
	driver config.Driver
}

func NewDatabase(cfg config.Database, log *zap.Logger) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, cfg.LogLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite && isMemory(cfg.Path) {
		// Every pooled connection to :memory: would see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database initialized",
		zap.String("driver", string(cfg.Driver)),
		zap.String("target", describeTarget(cfg)))

	return &Database{DB: db, driver: cfg.Driver}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Driver() config.Driver {
	return d.driver
}

// maxTxAttempts bounds retries of transactions aborted by the server.
const maxTxAttempts = 5

// Transaction runs fn in a single transaction bound to ctx. PostgreSQL and
// MySQL run at SERIALIZABLE; SQLite opens its transactions with BEGIN
// IMMEDIATE (see sqliteDSN) which already serializes writers.
//
// A transaction the server aborts as a serialization failure or deadlock is
// run again, so fn must not keep state between attempts.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = d.DB.WithContext(ctx).Transaction(fn, d.txOptions()...)
		if err == nil || !IsSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// IsSerializationFailure reports whether err is a PostgreSQL serialization
// failure or deadlock, or a MySQL deadlock.
func IsSerializationFailure(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "40001", "40P01":
			return true
		}
		return false
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213
	}
	return false
}

func (d *Database) txOptions() []*sql.TxOptions {
	switch d.driver {
	case config.DriverPostgres, config.DriverMySQL:
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	default:
		return nil
	}
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: sqliteDSN(cfg.Path)}), nil
	case config.DriverPostgres:
		return postgres.Open(postgresDSN(cfg)), nil
	case config.DriverMySQL:
		return mysql.Open(mysqlDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(path string) string {
	if path == "" {
		path = config.DefaultDatabasePath
	}
	params := "_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	if !isMemory(path) {
		params += "&_journal_mode=WAL"
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return "file:" + path + "?" + params
}

func postgresDSN(cfg config.Database) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

func mysqlDSN(cfg config.Database) string {
	c := mysqldriver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func describeTarget(cfg config.Database) string {
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverMySQL:
		return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)) + "/" + cfg.Name
	default:
		return cfg.Path
	}
}

func newGormLogger(log *zap.Logger, level string) logger.Interface {
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  parseLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
