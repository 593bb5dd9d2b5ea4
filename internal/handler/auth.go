package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/config"
	"github.com/tberkay/customer-crm/internal/repository"
	"github.com/tberkay/customer-crm/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return render(c, "register.html", nil)
}

// Register creates a user from the submitted form. Empty fields and
// duplicate username/email re-surface on the form via a flash message; on
// success the browser is sent to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if username == "" || email == "" || password == "" {
		utils.SetFlash(c, "danger", "All fields are required.")
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.Users.Create(ctx, username, email, password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) || errors.Is(err, repository.ErrEmailExists) {
			utils.SetFlash(c, "danger", "Username or email already exists.")
		} else {
			utils.SetFlash(c, "danger", "Registration failed.")
		}
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	utils.SetFlash(c, "success", "Registration successful. Please log in.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, "login.html", nil)
}

// Login verifies the credentials and establishes a session by setting the
// signed session cookie. A missing user and a failed hash check are
// indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.SetFlash(c, "danger", "Invalid username or password.")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		utils.SetFlash(c, "danger", "Login failed.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		utils.SetFlash(c, "danger", "Invalid username or password.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, u.ID, u.Username, h.Cfg.SessionTTLMin)
	if err != nil {
		utils.SetFlash(c, "danger", "Login failed.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	c.SetCookie(utils.NewSessionCookie(tok))

	utils.SetFlash(c, "success", "Logged in successfully.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookie unconditionally and never fails.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(utils.ExpiredSessionCookie())
	utils.SetFlash(c, "success", "You have been logged out.")
	return c.Redirect(http.StatusFound, "/login")
}
