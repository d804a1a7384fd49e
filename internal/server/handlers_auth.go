package server

import (
	"crypto/subtle"
	"log/slog"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
)

// Session keys
const (
	sessionName    = "pakkeliste-session"
	sessionKeyUser = "user"
)

func (s *Server) isLoggedIn(c echo.Context) bool {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return false
	}
	user, ok := session.Values[sessionKeyUser].(string)
	return ok && user != ""
}

// requireAuth guards page routes: anonymous requests are sent to the login
// form with a return path.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.isLoggedIn(c) {
			return c.Redirect(302, "/login?next="+url.QueryEscape(c.Request().URL.Path))
		}
		return next(c)
	}
}

// requireAuthJSON guards the fetch endpoints. A redirect would be followed
// by fetch and read as success by the page script, so these answer 401.
func (s *Server) requireAuthJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.isLoggedIn(c) {
			return apperrors.UnauthorizedError("login required")
		}
		return next(c)
	}
}

func (s *Server) handleLoginPage(c echo.Context) error {
	data := map[string]any{
		"Msg":  c.QueryParam("msg"),
		"Next": sanitizeNext(c.QueryParam("next")),
	}
	return renderTemplate(c, s.loginTemplate, data)
}

func (s *Server) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := sanitizeNext(c.FormValue("next"))

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPass)) == 1
	if !userOK || !passOK {
		slog.Info("Rejected login attempt", "username", username)
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		data := map[string]any{"Msg": "Forkert login", "Next": next}
		return renderTemplate(c, s.loginTemplate, data)
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		// Stale or tampered cookie; start over with a fresh session.
		session, _ = s.sessionStore.New(c.Request(), sessionName)
	}
	session.Values[sessionKeyUser] = username
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()

	if next == "" {
		next = "/"
	}
	return c.Redirect(303, next)
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.Warn("Failed to create session during logout", "error", err)
		}
	}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to clear session", err)
	}

	return c.Redirect(303, "/?msg="+url.QueryEscape("Logget ud"))
}

// sanitizeNext keeps the post-login redirect on this site.
func sanitizeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
