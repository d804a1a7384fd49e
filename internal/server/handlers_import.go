package server

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/importer"
	"github.com/flr45/Pakkeliste-SBR/internal/logging"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
)

func (s *Server) handleImportForm(c echo.Context) error {
	data := map[string]any{
		"Logged": s.isLoggedIn(c),
		"Msg":    c.QueryParam("msg"),
	}
	return renderTemplate(c, s.importTemplate, data)
}

// handleImport replaces a vehicle's places and items with the contents of an
// uploaded CSV. The vehicle is matched by name, created if missing.
func (s *Server) handleImport(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Redirect(303, "/import?msg="+url.QueryEscape("Fil mangler"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.InternalError("failed to open upload", err)
	}
	defer file.Close()

	result, err := importer.Parse(file, fileHeader.Filename)
	if errors.Is(err, importer.ErrBadHeader) {
		metrics.ImportsTotal.WithLabelValues("bad_header").Inc()
		return c.Redirect(303, "/import?msg="+url.QueryEscape(
			"Forkert header. Forventede 'Brandbil,Rum/Låge,Udstyr,Antal,Note' eller 'Rum/Låge,Udstyr,Antal,Note'."))
	}
	if err != nil {
		metrics.ImportsTotal.WithLabelValues("unreadable").Inc()
		return c.Redirect(303, "/import?msg="+url.QueryEscape("Tom eller ulæselig fil"))
	}

	ctx := c.Request().Context()

	vehicle, err := s.vehicles.GetByName(ctx, result.VehicleName)
	if errors.Is(err, domain.ErrVehicleNotFound) {
		vehicle, err = s.vehicles.Create(ctx, result.VehicleName)
	}
	if err != nil {
		return apperrors.InternalError("failed to resolve vehicle", err)
	}

	if err := s.places.DeleteByVehicle(ctx, vehicle.ID); err != nil {
		return apperrors.InternalError("failed to clear vehicle", err)
	}

	imported := 0
	for _, group := range result.Places {
		place, err := s.places.Add(ctx, vehicle.ID, group.Name)
		if err != nil {
			return apperrors.InternalError("failed to import place", err)
		}
		for _, row := range group.Items {
			if _, err := s.items.Add(ctx, place.ID, row.Name, row.Quantity, row.Note); err != nil {
				return apperrors.InternalError("failed to import item", err)
			}
			imported++
		}
	}

	metrics.ImportsTotal.WithLabelValues("ok").Inc()
	metrics.ImportedItemsTotal.Add(float64(imported))
	logging.WithVehicle(vehicle.ID).Info("CSV import completed",
		"file", fileHeader.Filename, "places", len(result.Places), "items", imported)
	return c.Redirect(303, fmt.Sprintf("/vehicle/%d?msg=%s", vehicle.ID, url.QueryEscape("Import OK")))
}
