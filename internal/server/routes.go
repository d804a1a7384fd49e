package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Assets and stored photos
	s.echo.Static("/static", "web/static")
	s.echo.Static("/uploads", s.config.UploadsDir)

	// Public pages
	s.echo.GET("/", s.handleHome)
	s.echo.GET("/vehicle/:id", s.handleVehicleDetail)
	s.echo.GET("/search", s.handleSearch)

	// Auth
	s.echo.GET("/login", s.handleLoginPage)
	s.echo.POST("/login", s.handleLogin)
	s.echo.POST("/logout", s.handleLogout)

	// Page-form mutations (authenticated, respond with redirects)
	s.echo.POST("/vehicles", s.handleCreateVehicle, s.requireAuth)
	s.echo.POST("/vehicle/:id/delete", s.handleDeleteVehicle, s.requireAuth)
	s.echo.POST("/vehicle/:id/place/add", s.handleAddPlace, s.requireAuth)
	s.echo.POST("/item/:id/edit", s.handleEditItem, s.requireAuth)
	s.echo.POST("/item/:id/delete", s.handleDeleteItem, s.requireAuth)
	s.echo.GET("/import", s.handleImportForm, s.requireAuth)
	s.echo.POST("/import", s.handleImport, s.requireAuth)

	// Fetch mutations used by the page script (authenticated, respond with
	// JSON; a 401 here must stay a 401 and not a login redirect)
	s.echo.POST("/place/:id/rename", s.handleRenamePlace, s.requireAuthJSON)
	s.echo.POST("/place/:id/move", s.handleMovePlace, s.requireAuthJSON)
	s.echo.POST("/place/:id/add_item", s.handleAddItem, s.requireAuthJSON)
	s.echo.POST("/item/:id/move", s.handleMoveItem, s.requireAuthJSON)
	s.echo.POST("/item/:id/photo", s.handleUploadPhoto, s.requireAuthJSON)
}
