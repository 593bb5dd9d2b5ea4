package router // package router defines how HTTP routes are registered for the application

import (
	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/handler"
	"github.com/tberkay/customer-crm/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the register/login pages.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler) {
	// Liveness endpoint for load balancers and monitoring systems.
	e.GET("/healthz", handler.Health)

	// Registration and login must be reachable without a session; every
	// other page redirects here when the session cookie is absent.
	e.GET("/register", a.ShowRegister)
	e.POST("/register", a.Register)
	e.GET("/login", a.ShowLogin)
	e.POST("/login", a.Login)
}

// RegisterProtected registers every route behind the session gate. The
// RequireSession middleware runs before any handler in this group, so an
// unauthenticated request is redirected to /login before any side effect.
func RegisterProtected(e *echo.Echo, a *handler.AuthHandler, ch *handler.CustomerHandler, ih *handler.InteractionHandler, sessionSecret string) {
	g := e.Group("")
	g.Use(middleware.RequireSession(sessionSecret))

	g.GET("/logout", a.Logout)

	// Dashboard doubles as the site root.
	g.GET("/", ch.Dashboard)
	g.GET("/dashboard", ch.Dashboard)

	g.GET("/add_customer", ch.ShowAddCustomer)
	g.POST("/add_customer", ch.AddCustomer)
	g.GET("/edit_customer/:id", ch.ShowEditCustomer)
	g.POST("/edit_customer/:id", ch.EditCustomer)
	g.POST("/delete_customer/:id", ch.DeleteCustomer)
	g.GET("/view_customer/:id", ch.ViewCustomer)
	g.GET("/search_customer", ch.SearchCustomer)
	g.POST("/search_customer", ch.SearchCustomer)

	g.GET("/add_interaction/:customer_id", ih.ShowAddInteraction)
	g.POST("/add_interaction/:customer_id", ih.AddInteraction)
	g.GET("/edit_interaction/:id", ih.ShowEditInteraction)
	g.POST("/edit_interaction/:id", ih.EditInteraction)
	g.POST("/delete_interaction/:id", ih.DeleteInteraction)
}
