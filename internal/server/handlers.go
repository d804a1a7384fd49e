package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/flr45/Pakkeliste-SBR/internal/errors"
)

// renderTemplate renders a template to a buffer first to prevent partial HTML
// from being sent if template execution fails.
func renderTemplate(c echo.Context, tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("Template execution failed", "path", c.Request().URL.Path, "error", err)
		return c.String(500, "Failed to render page")
	}
	return c.HTMLBlob(200, buf.Bytes())
}

// paramID parses the numeric :id route parameter.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("invalid id")
	}
	return id, nil
}

// bodyField reads a single named field from either a JSON object body or a
// form-encoded body, depending on the request content type. The page script
// posts forms; JSON is accepted for API callers.
func bodyField(c echo.Context, name string) string {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		var body map[string]any
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return ""
		}
		if v, ok := body[name].(string); ok {
			return v
		}
		return ""
	}
	return c.FormValue(name)
}
