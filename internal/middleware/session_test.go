package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tberkay/customer-crm/internal/utils"
)

const testSecret = "test-secret"

func runGuard(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	err := RequireSession(testSecret)(next)(c)
	require.NoError(t, err)
	return rec, called, c
}

func TestRequireSessionNoCookieRedirects(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec, called, _ := runGuard(t, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSessionValidCookiePassesIdentity(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 7, "alice", 30)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(utils.NewSessionCookie(tok))
	rec, called, c := runGuard(t, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), c.Get("user_id"))
	assert.Equal(t, "alice", c.Get("username"))
}

func TestRequireSessionTamperedCookieRedirects(t *testing.T) {
	tok, err := utils.NewSessionToken("some-other-secret", 7, "alice", 30)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(utils.NewSessionCookie(tok))
	rec, called, _ := runGuard(t, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	// The bad cookie is cleared so the browser stops resending it.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
