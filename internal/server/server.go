// Package server wires the HTTP surface: pages, mutation endpoints, auth.
package server

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/flr45/Pakkeliste-SBR/internal/config"
	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
)

const sessionMaxAgeDays = 7

// photoStore is the slice of photos.Store the handlers need.
type photoStore interface {
	Save(r io.Reader, filename, contentType string) (string, error)
	Remove(urlPath string) error
}

// dbHealthChecker is a minimal interface for readiness checks.
type dbHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Server struct {
	echo          *echo.Echo
	config        *config.Config
	vehicles      domain.VehicleRepository
	places        domain.PlaceRepository
	items         domain.ItemRepository
	photos        photoStore
	dbHealthCheck dbHealthChecker
	sessionStore  *sessions.CookieStore
	startTime     time.Time

	indexTemplate   *template.Template
	vehicleTemplate *template.Template
	loginTemplate   *template.Template
	searchTemplate  *template.Template
	importTemplate  *template.Template
}

func NewServer(
	cfg *config.Config,
	vehicles domain.VehicleRepository,
	places domain.PlaceRepository,
	items domain.ItemRepository,
	photos photoStore,
	dbHealthCheck dbHealthChecker,
) (*Server, error) {
	// Parse templates once at startup
	indexTmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}
	vehicleTmpl, err := template.ParseFiles("web/templates/vehicle.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse vehicle template: %w", err)
	}
	loginTmpl, err := template.ParseFiles("web/templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse login template: %w", err)
	}
	searchTmpl, err := template.ParseFiles("web/templates/search.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse search template: %w", err)
	}
	importTmpl, err := template.ParseFiles("web/templates/import.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse import template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:            e,
		config:          cfg,
		vehicles:        vehicles,
		places:          places,
		items:           items,
		photos:          photos,
		dbHealthCheck:   dbHealthCheck,
		sessionStore:    sessionStore,
		startTime:       time.Now(),
		indexTemplate:   indexTmpl,
		vehicleTemplate: vehicleTmpl,
		loginTemplate:   loginTmpl,
		searchTemplate:  searchTmpl,
		importTemplate:  importTmpl,
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
