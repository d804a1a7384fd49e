package server

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
	"github.com/flr45/Pakkeliste-SBR/internal/metrics"
	"github.com/flr45/Pakkeliste-SBR/internal/search"
)

// itemView decorates an item with the precomputed lower-cased text the page
// script filters against.
type itemView struct {
	*domain.Item
	SearchText string
}

type placeView struct {
	*domain.Place
	Items []itemView
}

func (s *Server) handleHome(c echo.Context) error {
	vehicles, err := s.vehicles.ListWithPlaces(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to load vehicles", err)
	}

	data := map[string]any{
		"Vehicles": vehicles,
		"Logged":   s.isLoggedIn(c),
		"Msg":      c.QueryParam("msg"),
	}
	return renderTemplate(c, s.indexTemplate, data)
}

func (s *Server) handleVehicleDetail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	vehicle, err := s.vehicles.GetDetail(c.Request().Context(), id)
	if errors.Is(err, domain.ErrVehicleNotFound) {
		return c.Redirect(303, "/?msg="+url.QueryEscape("Køretøj findes ikke"))
	}
	if err != nil {
		return apperrors.InternalError("failed to load vehicle", err)
	}

	places := make([]placeView, 0, len(vehicle.Places))
	for _, p := range vehicle.Places {
		pv := placeView{Place: p, Items: make([]itemView, 0, len(p.Items))}
		for _, it := range p.Items {
			pv.Items = append(pv.Items, itemView{
				Item:       it,
				SearchText: search.Normalize(it.Name + " " + it.Note),
			})
		}
		places = append(places, pv)
	}

	data := map[string]any{
		"Vehicle": vehicle,
		"Places":  places,
		"Logged":  s.isLoggedIn(c),
	}
	return renderTemplate(c, s.vehicleTemplate, data)
}

func (s *Server) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParam("q")
	vehicleFilter, _ := strconv.ParseInt(c.QueryParam("vehicle"), 10, 64)

	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return apperrors.InternalError("failed to load vehicles", err)
	}

	var rows []*domain.SearchEntry
	if search.Normalize(q) != "" {
		metrics.SearchQueriesTotal.Inc()
		entries, err := s.items.ListEntries(ctx)
		if err != nil {
			return apperrors.InternalError("failed to search items", err)
		}
		for _, e := range entries {
			if vehicleFilter != 0 && e.VehicleID != vehicleFilter {
				continue
			}
			hay := e.Item.Name + " " + e.PlaceName + " " + e.VehicleName
			if search.Match(hay, q) {
				rows = append(rows, e)
			}
		}
	}

	data := map[string]any{
		"Rows":     rows,
		"Q":        q,
		"Vehicle":  vehicleFilter,
		"Vehicles": vehicles,
		"Logged":   s.isLoggedIn(c),
	}
	return renderTemplate(c, s.searchTemplate, data)
}
