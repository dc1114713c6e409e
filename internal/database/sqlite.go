package database

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// sqliteDriverName is mattn/go-sqlite3 with LOWER() replaced by a
// Unicode-aware version. The built-in only folds ASCII, not
// Cyrillic or accented text.
const sqliteDriverName = "sqlite3_smartlibrary"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", foldLower, true)
		},
	})
}

// foldLower lowercases text with the same rules as strings.ToLower. Other
// values pass through; NULL stays NULL.
func foldLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}
