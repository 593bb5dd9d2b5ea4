package utils

// flash.go implements one-shot flash messages on top of a short-lived
// cookie. A handler sets the flash right before redirecting; the next
// rendered page takes it, which also clears the cookie. Categories follow
// the original UI conventions: "success", "danger" and "error".

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// FlashCookieName is the cookie used for transient user-visible messages.
const FlashCookieName = "crm_flash"

// Flash is a transient message displayed once on the next rendered page.
type Flash struct {
	Category string // success | danger | error
	Message  string
}

// SetFlash stores a flash message for the next request. The payload is
// base64url-encoded so arbitrary message text survives cookie encoding.
func SetFlash(c echo.Context, category, message string) {
	val := base64.RawURLEncoding.EncodeToString([]byte(category + "|" + message))
	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    val,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash returns the pending flash message, if any, and clears it so it
// is shown exactly once. A malformed cookie is dropped silently.
func TakeFlash(c echo.Context) *Flash {
	ck, err := c.Cookie(FlashCookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(string(raw), "|")
	if !ok {
		return nil
	}
	return &Flash{Category: category, Message: message}
}
