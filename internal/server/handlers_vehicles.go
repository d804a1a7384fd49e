package server

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
)

func (s *Server) handleCreateVehicle(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return apperrors.ValidationError("name cannot be empty")
	}

	if _, err := s.vehicles.Create(c.Request().Context(), name); err != nil {
		return apperrors.InternalError("failed to create vehicle", err)
	}

	metrics.MutationsTotal.WithLabelValues("vehicle", "create").Inc()
	return c.Redirect(303, "/")
}

func (s *Server) handleDeleteVehicle(c echo.Context) error {
	vehicleID, err := paramID(c)
	if err != nil {
		return err
	}

	if err := s.vehicles.Delete(c.Request().Context(), vehicleID); err != nil {
		return apperrors.InternalError("failed to delete vehicle", err)
	}

	metrics.MutationsTotal.WithLabelValues("vehicle", "delete").Inc()
	return c.Redirect(303, "/?msg="+url.QueryEscape("Køretøj slettet"))
}
