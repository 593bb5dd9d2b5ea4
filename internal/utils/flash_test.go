package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	e := echo.New()

	// First request sets the flash before redirecting.
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/add_customer", nil), rec)
	SetFlash(c, "success", "Customer added successfully.")

	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	flashCookie := res.Cookies()[0]
	assert.Equal(t, FlashCookieName, flashCookie.Name)

	// Next request carries the cookie; the rendered page takes the flash.
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(flashCookie)
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req, rec2)

	fl := TakeFlash(c2)
	require.NotNil(t, fl)
	assert.Equal(t, "success", fl.Category)
	assert.Equal(t, "Customer added successfully.", fl.Message)

	// Taking the flash clears the cookie so it is shown exactly once.
	cleared := rec2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestTakeFlashNoCookie(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, TakeFlash(c))
}

func TestTakeFlashMalformedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "%%%not-base64%%%"})
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Nil(t, TakeFlash(c))
}
