package auth

import (
	"encoding/gob"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/smartlibrary/internal/config"
	"github.com/mrlokans/smartlibrary/internal/database"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

// Session data keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
	SessionKeyRole     = "role"
	SessionKeyMemberID = "member_id"
	SessionKeyLoginAt  = "login_at"
)

func init() {
	gob.Register(entities.UserRole(""))
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with login-specific helpers.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager. Sessions live in the library
// database when it is SQLite and in process memory otherwise.
func NewSessionManager(db *database.Database, cfg config.Auth) (*SessionManager, error) {
	sm := scs.New()

	if db != nil && db.Driver() == config.DriverSQLite {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, err
		}
		_, err = sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = sqlite3store.New(sqlDB)
	} else {
		sm.Store = memstore.New()
	}

	lifetime := cfg.SessionLifetime
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "smartlibrary_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession stores the user in a fresh session after a successful login.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	// New token on login so a planted session id is useless.
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	ctx := r.Context()
	sm.Put(ctx, SessionKeyUserID, int(user.ID))
	sm.Put(ctx, SessionKeyUsername, user.Username)
	sm.Put(ctx, SessionKeyRole, user.Role)
	if user.MemberID != nil {
		sm.Put(ctx, SessionKeyMemberID, *user.MemberID)
	}
	sm.Put(ctx, SessionKeyLoginAt, time.Now())
	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID returns the logged-in user's ID, or 0.
func (sm *SessionManager) GetUserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// IsAuthenticated returns true if the request has a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetUserID(r) != 0
}

// SessionData holds the session information for a request.
type SessionData struct {
	UserID   uint              `json:"user_id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
	MemberID string            `json:"member_id,omitempty"`
	LoginAt  time.Time         `json:"login_at"`
}

// GetSessionData retrieves all session data at once, or nil when logged out.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	userID := sm.GetUserID(r)
	if userID == 0 {
		return nil
	}

	ctx := r.Context()
	role, _ := sm.Get(ctx, SessionKeyRole).(entities.UserRole)
	loginAt, _ := sm.Get(ctx, SessionKeyLoginAt).(time.Time)

	return &SessionData{
		UserID:   userID,
		Username: sm.GetString(ctx, SessionKeyUsername),
		Role:     role,
		MemberID: sm.GetString(ctx, SessionKeyMemberID),
		LoginAt:  loginAt,
	}
}
