package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/utils"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// render executes a page template with the pending flash message and the
// logged-in username merged into the data map.
func render(c echo.Context, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	data["Flash"] = utils.TakeFlash(c)
	if v, ok := c.Get("username").(string); ok {
		data["Username"] = v
	}
	return c.Render(http.StatusOK, name, data)
}

// notFound renders the generic response for ids that do not resolve to a row.
func notFound(c echo.Context) error {
	return c.String(http.StatusNotFound, "not found")
}
