package server

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/flr45/Pakkeliste-SBR/internal/config"
	"github.com/flr45/Pakkeliste-SBR/internal/domain"
	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
)

// --- Mock implementations ---

type mockVehicleRepo struct {
	listFn           func(ctx context.Context) ([]*domain.VehicleSummary, error)
	listWithPlacesFn func(ctx context.Context) ([]*domain.VehicleSummary, error)
	getDetailFn      func(ctx context.Context, vehicleID int64) (*domain.Vehicle, error)
	createFn         func(ctx context.Context, name string) (*domain.Vehicle, error)
	getByNameFn      func(ctx context.Context, name string) (*domain.Vehicle, error)
	deleteFn         func(ctx context.Context, vehicleID int64) error
}

func (m *mockVehicleRepo) ListWithPlaces(ctx context.Context) ([]*domain.VehicleSummary, error) {
	if m.listWithPlacesFn != nil {
		return m.listWithPlacesFn(ctx)
	}
	return nil, nil
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]*domain.VehicleSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVehicleRepo) GetDetail(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	if m.getDetailFn != nil {
		return m.getDetailFn(ctx, vehicleID)
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *mockVehicleRepo) Create(ctx context.Context, name string) (*domain.Vehicle, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name)
	}
	return &domain.Vehicle{ID: 1, Name: name}, nil
}

func (m *mockVehicleRepo) GetByName(ctx context.Context, name string) (*domain.Vehicle, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, domain.ErrVehicleNotFound
}

func (m *mockVehicleRepo) Delete(ctx context.Context, vehicleID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, vehicleID)
	}
	return nil
}

type mockPlaceRepo struct {
	getFn             func(ctx context.Context, placeID int64) (*domain.Place, error)
	addFn             func(ctx context.Context, vehicleID int64, name string) (*domain.Place, error)
	renameFn          func(ctx context.Context, placeID int64, name string) error
	moveFn            func(ctx context.Context, placeID int64, dir domain.Direction) error
	deleteByVehicleFn func(ctx context.Context, vehicleID int64) error
}

func (m *mockPlaceRepo) Get(ctx context.Context, placeID int64) (*domain.Place, error) {
	if m.getFn != nil {
		return m.getFn(ctx, placeID)
	}
	return &domain.Place{ID: placeID, VehicleID: 1, Name: "Cab"}, nil
}

func (m *mockPlaceRepo) Add(ctx context.Context, vehicleID int64, name string) (*domain.Place, error) {
	if m.addFn != nil {
		return m.addFn(ctx, vehicleID, name)
	}
	return &domain.Place{ID: 1, VehicleID: vehicleID, Name: name}, nil
}

func (m *mockPlaceRepo) Rename(ctx context.Context, placeID int64, name string) error {
	if m.renameFn != nil {
		return m.renameFn(ctx, placeID, name)
	}
	return nil
}

func (m *mockPlaceRepo) Move(ctx context.Context, placeID int64, dir domain.Direction) error {
	if m.moveFn != nil {
		return m.moveFn(ctx, placeID, dir)
	}
	return nil
}

func (m *mockPlaceRepo) DeleteByVehicle(ctx context.Context, vehicleID int64) error {
	if m.deleteByVehicleFn != nil {
		return m.deleteByVehicleFn(ctx, vehicleID)
	}
	return nil
}

type mockItemRepo struct {
	getFn          func(ctx context.Context, itemID int64) (*domain.Item, error)
	addFn          func(ctx context.Context, placeID int64, name string, quantity int, note string) (*domain.Item, error)
	updateFn       func(ctx context.Context, itemID int64, name string, quantity int, note string, placeID int64) error
	moveFn         func(ctx context.Context, itemID int64, dir domain.Direction) error
	deleteFn       func(ctx context.Context, itemID int64) error
	setPhotoPathFn func(ctx context.Context, itemID int64, photoPath string) error
	listEntriesFn  func(ctx context.Context) ([]*domain.SearchEntry, error)
}

func (m *mockItemRepo) Get(ctx context.Context, itemID int64) (*domain.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, itemID)
	}
	return &domain.Item{ID: itemID, PlaceID: 1, Name: "axe", Quantity: 1}, nil
}

func (m *mockItemRepo) Add(ctx context.Context, placeID int64, name string, quantity int, note string) (*domain.Item, error) {
	if m.addFn != nil {
		return m.addFn(ctx, placeID, name, quantity, note)
	}
	return &domain.Item{ID: 1, PlaceID: placeID, Name: name, Quantity: quantity, Note: note}, nil
}

func (m *mockItemRepo) Update(ctx context.Context, itemID int64, name string, quantity int, note string, placeID int64) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, itemID, name, quantity, note, placeID)
	}
	return nil
}

func (m *mockItemRepo) Move(ctx context.Context, itemID int64, dir domain.Direction) error {
	if m.moveFn != nil {
		return m.moveFn(ctx, itemID, dir)
	}
	return nil
}

func (m *mockItemRepo) Delete(ctx context.Context, itemID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, itemID)
	}
	return nil
}

func (m *mockItemRepo) SetPhotoPath(ctx context.Context, itemID int64, photoPath string) error {
	if m.setPhotoPathFn != nil {
		return m.setPhotoPathFn(ctx, itemID, photoPath)
	}
	return nil
}

func (m *mockItemRepo) ListEntries(ctx context.Context) ([]*domain.SearchEntry, error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(ctx)
	}
	return nil, nil
}

type mockPhotoStore struct {
	saveFn   func(r io.Reader, filename, contentType string) (string, error)
	removeFn func(urlPath string) error
}

func (m *mockPhotoStore) Save(r io.Reader, filename, contentType string) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(r, filename, contentType)
	}
	return "/uploads/test.jpg", nil
}

func (m *mockPhotoStore) Remove(urlPath string) error {
	if m.removeFn != nil {
		return m.removeFn(urlPath)
	}
	return nil
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck(context.Context) error {
	return m.err
}

// --- Test helpers ---

type testDeps struct {
	vehicles *mockVehicleRepo
	places   *mockPlaceRepo
	items    *mockItemRepo
	photos   *mockPhotoStore
	health   *mockHealthChecker
}

func newTestDeps() *testDeps {
	return &testDeps{
		vehicles: &mockVehicleRepo{},
		places:   &mockPlaceRepo{},
		items:    &mockItemRepo{},
		photos:   &mockPhotoStore{},
		health:   &mockHealthChecker{},
	}
}

func newTestServer(t *testing.T, deps *testDeps) *Server {
	t.Helper()

	indexTmpl := template.Must(template.New("index.html").Parse(
		`Vehicles {{range .Vehicles}}{{.Name}}{{range .Places}} [{{.Name}}:{{.ItemCount}}]{{end}} {{end}}{{.Msg}}`))
	vehicleTmpl := template.Must(template.New("vehicle.html").Parse(
		`Vehicle {{.Vehicle.Name}}{{range .Places}} place-{{.ID}}:{{.Name}}{{range .Items}} item-{{.ID}}:{{.Name}}:{{.SearchText}}{{end}}{{end}}`))
	loginTmpl := template.Must(template.New("login.html").Parse(`Login {{.Msg}}`))
	searchTmpl := template.Must(template.New("search.html").Parse(`Search {{.Q}}{{range .Rows}} {{.Item.Name}}@{{.PlaceName}}{{end}}`))
	importTmpl := template.Must(template.New("import.html").Parse(`Import {{.Msg}}`))

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo: e,
		config: &config.Config{
			AppEnv:     "test",
			AdminUser:  "admin",
			AdminPass:  "hunter2",
			UploadsDir: t.TempDir(),
		},
		vehicles:        deps.vehicles,
		places:          deps.places,
		items:           deps.items,
		photos:          deps.photos,
		dbHealthCheck:   deps.health,
		sessionStore:    store,
		startTime:       time.Now(),
		indexTemplate:   indexTmpl,
		vehicleTemplate: vehicleTmpl,
		loginTemplate:   loginTmpl,
		searchTemplate:  searchTmpl,
		importTemplate:  importTmpl,
	}

	srv.registerRoutes()

	return srv
}

// doRequest runs a request through the full echo stack, including middleware.
func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

// loginCookies authenticates against the test server and returns the session cookies.
func loginCookies(t *testing.T, srv *Server) []*http.Cookie {
	t.Helper()

	form := "username=admin&password=hunter2"
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := doRequest(srv, req)
	require.Equal(t, 303, rec.Code, "login should succeed: %s", rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "login should set a session cookie")
	return cookies
}

func authedRequest(t *testing.T, srv *Server, method, target, body, contentType string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, c := range loginCookies(t, srv) {
		req.AddCookie(c)
	}
	return req
}
