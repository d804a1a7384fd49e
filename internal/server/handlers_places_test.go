package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flr45/Pakkeliste-SBR/internal/domain"
)

func TestAddPlace_Redirects(t *testing.T) {
	deps := newTestDeps()
	var gotVehicleID int64
	var gotName string
	deps.places.addFn = func(ctx context.Context, vehicleID int64, name string) (*domain.Place, error) {
		gotVehicleID = vehicleID
		gotName = name
		return &domain.Place{ID: 5, VehicleID: vehicleID, Name: name}, nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/vehicle/3/place/add", "name=Bagrum", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 303, rec.Code)
	assert.Equal(t, "/vehicle/3", rec.Header().Get("Location"))
	assert.Equal(t, int64(3), gotVehicleID)
	assert.Equal(t, "Bagrum", gotName)
}

func TestRenamePlace_Success(t *testing.T) {
	deps := newTestDeps()
	var gotName string
	deps.places.renameFn = func(ctx context.Context, placeID int64, name string) error {
		assert.Equal(t, int64(4), placeID)
		gotName = name
		return nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/4/rename", "name=Venstre låge", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	require.Equal(t, 200, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Venstre låge", body["name"])
	assert.Equal(t, "Venstre låge", gotName)
}

func TestRenamePlace_AcceptsJSONBody(t *testing.T) {
	deps := newTestDeps()
	var gotName string
	deps.places.renameFn = func(ctx context.Context, placeID int64, name string) error {
		gotName = name
		return nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/4/rename", `{"name":"Kabine"}`, echo.MIMEApplicationJSON)
	rec := doRequest(srv, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "Kabine", gotName)
}

func TestRenamePlace_EmptyName(t *testing.T) {
	deps := newTestDeps()
	deps.places.renameFn = func(ctx context.Context, placeID int64, name string) error {
		t.Fatal("rename must not be called for an empty name")
		return nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/4/rename", "name=%20%20", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 400, rec.Code)
}

func TestRenamePlace_NotFound(t *testing.T) {
	deps := newTestDeps()
	deps.places.renameFn = func(ctx context.Context, placeID int64, name string) error {
		return domain.ErrPlaceNotFound
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/99/rename", "name=Kabine", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 404, rec.Code)
}

func TestMovePlace_Success(t *testing.T) {
	deps := newTestDeps()
	var gotDir domain.Direction
	deps.places.moveFn = func(ctx context.Context, placeID int64, dir domain.Direction) error {
		assert.Equal(t, int64(4), placeID)
		gotDir = dir
		return nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/4/move", "direction=up", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, domain.DirectionUp, gotDir)
}

func TestMovePlace_BadDirection(t *testing.T) {
	srv := newTestServer(t, newTestDeps())

	req := authedRequest(t, srv, http.MethodPost, "/place/4/move", "direction=sideways", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 400, rec.Code)
}

func TestAddItem_Success(t *testing.T) {
	deps := newTestDeps()
	deps.items.addFn = func(ctx context.Context, placeID int64, name string, quantity int, note string) (*domain.Item, error) {
		assert.Equal(t, int64(4), placeID)
		assert.Equal(t, "Stigekrog", name)
		assert.Equal(t, 2, quantity)
		return &domain.Item{ID: 42, PlaceID: placeID, Name: name, Quantity: quantity}, nil
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/4/add_item", "name=Stigekrog&quantity=2", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	require.Equal(t, 200, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(42), body["item_id"])
}

func TestAddItem_DefaultsQuantity(t *testing.T) {
	deps := newTestDeps()
	var gotQuantity int
	deps.items.addFn = func(ctx context.Context, placeID int64, name string, quantity int, note string) (*domain.Item, error) {
		gotQuantity = quantity
		return &domain.Item{ID: 1, PlaceID: placeID, Name: name, Quantity: quantity}, nil
	}
	srv := newTestServer(t, deps)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		req := authedRequest(t, srv, http.MethodPost, "/place/4/add_item", "name=Økse&quantity="+raw, echo.MIMEApplicationForm)
		rec := doRequest(srv, req)

		require.Equal(t, 200, rec.Code, "quantity=%q", raw)
		assert.Equal(t, 1, gotQuantity, "quantity=%q", raw)
	}
}

func TestAddItem_UnknownPlace(t *testing.T) {
	deps := newTestDeps()
	deps.places.getFn = func(ctx context.Context, placeID int64) (*domain.Place, error) {
		return nil, domain.ErrPlaceNotFound
	}
	srv := newTestServer(t, deps)

	req := authedRequest(t, srv, http.MethodPost, "/place/99/add_item", "name=Økse", echo.MIMEApplicationForm)
	rec := doRequest(srv, req)

	assert.Equal(t, 404, rec.Code)
}
