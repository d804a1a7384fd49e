package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/logging"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
)

func (s *Server) handleMoveItem(c echo.Context) error {
	itemID, err := paramID(c)
	if err != nil {
		return err
	}

	dir, err := domain.ParseDirection(bodyField(c, "direction"))
	if err != nil {
		return apperrors.ValidationError(err.Error())
	}

	err = s.items.Move(c.Request().Context(), itemID, dir)
	if errors.Is(err, domain.ErrItemNotFound) {
		return apperrors.NotFoundError("item not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to move item", err)
	}

	metrics.MovesTotal.WithLabelValues("item", string(dir)).Inc()
	return c.JSON(200, map[string]string{"status": "ok"})
}

func (s *Server) handleUploadPhoto(c echo.Context) error {
	itemID, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := s.items.Get(ctx, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return apperrors.NotFoundError("item not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load item", err)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return apperrors.ValidationError("photo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.InternalError("failed to open upload", err)
	}
	defer file.Close()

	photoPath, err := s.photos.Save(file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		return apperrors.ValidationError("photo must be an image")
	}

	if err := s.items.SetPhotoPath(ctx, itemID, photoPath); err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("error").Inc()
		return apperrors.InternalError("failed to save photo path", err)
	}

	// Replaced photos are orphans on disk; best-effort cleanup.
	if item.PhotoPath != "" {
		if err := s.photos.Remove(item.PhotoPath); err != nil {
			logging.WithError(err).Warn("Failed to remove replaced photo", "path", item.PhotoPath)
		}
	}

	metrics.PhotoUploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(200, map[string]string{"status": "ok", "photo_path": photoPath})
}

func (s *Server) handleEditItem(c echo.Context) error {
	itemID, err := paramID(c)
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

	placeID, err := strconv.ParseInt(c.FormValue("place_id"), 10, 64)
	if err != nil {
		return apperrors.ValidationError("invalid place_id")
	}

	ctx := c.Request().Context()
	place, err := s.places.Get(ctx, placeID)
	if errors.Is(err, domain.ErrPlaceNotFound) {
		return apperrors.NotFoundError("place not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load place", err)
	}

	err = s.items.Update(ctx, itemID, name, quantity, note, placeID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return apperrors.NotFoundError("item not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to update item", err)
	}

	metrics.MutationsTotal.WithLabelValues("item", "edit").Inc()
	return c.Redirect(303, fmt.Sprintf("/vehicle/%d", place.VehicleID))
}

func (s *Server) handleDeleteItem(c echo.Context) error {
	itemID, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	item, err := s.items.Get(ctx, itemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		return apperrors.NotFoundError("item not found")
	}
	if err != nil {
		return apperrors.InternalError("failed to load item", err)
	}

	place, err := s.places.Get(ctx, item.PlaceID)
	if err != nil {
		return apperrors.InternalError("failed to load place", err)
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return apperrors.InternalError("failed to delete item", err)
	}

	if item.PhotoPath != "" {
		if err := s.photos.Remove(item.PhotoPath); err != nil {
			logging.WithError(err).Warn("Failed to remove photo of deleted item", "path", item.PhotoPath)
		}
	}

	metrics.MutationsTotal.WithLabelValues("item", "delete").Inc()
	return c.Redirect(303, fmt.Sprintf("/vehicle/%d", place.VehicleID))
}
