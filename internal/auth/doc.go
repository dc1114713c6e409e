// Package auth provides login, sessions and authorization for the API.
//
// It supports two authentication modes:
//   - "none": No authentication required (default)
//   - "local": Users stored in the library database, session cookies issued
//     by POST /api/login
//
// # Configuration
//
//	AUTH_MODE=local
//	AUTH_SESSION_SECRET=<32+ bytes>  # Random per process if empty
//	AUTH_SESSION_LIFETIME=12h
//	AUTH_BCRYPT_COST=12
//	AUTH_SECURE_COOKIES=true         # HTTPS-only cookies
//
// # Roles
//
// Admins and librarians may change records; members can only read.
//
// # Usage
//
//	authService, err := auth.NewService(db.DB, cfg.Auth, logger)
//	sessions, err := auth.NewSessionManager(db, cfg.Auth)
//	mw := auth.NewMiddleware(authService, sessions, cfg.Auth)
//	api.Use(sessions.SessionLoadSave(), mw.Handler(), mw.RequireManagerForWrites())
package auth
