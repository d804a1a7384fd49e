package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
)

func (s *Server) handleAddPlace(c echo.Context) error {
	vehicleID, err := paramID(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return apperrors.ValidationError("name cannot be empty")
	}

	if _, err := s.places.Add(c.Request().Context(), vehicleID, name); err != nil {
		return apperrors.InternalError("failed to add place", err)
	}

	metrics.MutationsTotal.WithLabelValues("place", "add").Inc()
	return c.Redirect(303, fmt.Sprintf("/vehicle/%d", vehicleID))
}

func (s *Server) handleRenamePlace(c echo.Context) error {
	placeID, err := paramID(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(bodyField(c, "name"))
	if name == "" {
		return apperrors.ValidationError("name cannot be empty")
	}

	err = s.places.Rename(c.Request().Context(), placeID, name)
	if errors.Is(err, domain.ErrPlaceNotFound) {
		return apperrors.NotFoundError("place not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to rename place", err)
	}

	metrics.MutationsTotal.WithLabelValues("place", "rename").Inc()
	return c.JSON(200, map[string]string{"status": "ok", "name": name})
}

func (s *Server) handleMovePlace(c echo.Context) error {
	placeID, err := paramID(c)
	if err != nil {
		return err
	}

	dir, err := domain.ParseDirection(bodyField(c, "direction"))
	if err != nil {
		return apperrors.ValidationError(err.Error())
	}

	err = s.places.Move(c.Request().Context(), placeID, dir)
	if errors.Is(err, domain.ErrPlaceNotFound) {
		return apperrors.NotFoundError("place not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to move place", err)
	}

	metrics.MovesTotal.WithLabelValues("place", string(dir)).Inc()
	return c.JSON(200, map[string]string{"status": "ok"})
}

// handleAddItem backs the inline add form on the vehicle page; the page
// script reloads on a 2xx answer, so no fragment is returned.
func (s *Server) handleAddItem(c echo.Context) error {
	placeID, err := paramID(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return apperrors.ValidationError("name cannot be empty")
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}
	note := strings.TrimSpace(c.FormValue("note"))

	ctx := c.Request().Context()
	if _, err := s.places.Get(ctx, placeID); errors.Is(err, domain.ErrPlaceNotFound) {
		return apperrors.NotFoundError("place not found")
	} else if err != nil {
		return apperrors.InternalError("failed to load place", err)
	}

	item, err := s.items.Add(ctx, placeID, name, quantity, note)
	if err != nil {
		return apperrors.InternalError("failed to add item", err)
	}

	metrics.MutationsTotal.WithLabelValues("item", "add").Inc()
	return c.JSON(200, map[string]any{"status": "ok", "item_id": item.ID})
}
