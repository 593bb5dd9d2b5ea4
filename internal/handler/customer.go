package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/cache"
	"github.com/tberkay/customer-crm/internal/model"
	"github.com/tberkay/customer-crm/internal/queue"
	"github.com/tberkay/customer-crm/internal/repository"
	queue_publisher "github.com/tberkay/customer-crm/internal/service"
	"github.com/tberkay/customer-crm/internal/utils"
)

// CustomerHandler bundles dependencies for the customer pages: the two
// repositories, the Redis totals cache and nothing else. Every method is
// behind the session middleware.
type CustomerHandler struct {
	Customers    *repository.CustomerRepo
	Interactions *repository.InteractionRepo
	Stats        *cache.StatsCache
}

func NewCustomerHandler(cr *repository.CustomerRepo, ir *repository.InteractionRepo, st *cache.StatsCache) *CustomerHandler {
	if cr == nil || ir == nil || st == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: cr, Interactions: ir, Stats: st}
}

// Dashboard renders the customer list together with the global totals.
// The totals come from the Redis cache when warm; otherwise they are
// counted in SQL and the cache is primed.
func (h *CustomerHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	customers, err := h.Customers.ListAll(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load customers failed")
	}

	st, ok := h.Stats.Get(ctx)
	if !ok {
		cc, err := h.Customers.Count(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "count customers failed")
		}
		ic, err := h.Interactions.Count(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "count interactions failed")
		}
		st = cache.Stats{Customers: cc, Interactions: ic}
		h.Stats.Put(ctx, st)
	}

	return render(c, "dashboard.html", echo.Map{
		"Customers":         customers,
		"TotalCustomers":    st.Customers,
		"TotalInteractions": st.Interactions,
	})
}

// ShowAddCustomer renders the add-customer form.
func (h *CustomerHandler) ShowAddCustomer(c echo.Context) error {
	return render(c, "add_customer.html", nil)
}

// AddCustomer creates a customer from the submitted form. Name and email
// are required; phone is optional. No uniqueness or format checks apply.
func (h *CustomerHandler) AddCustomer(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	if name == "" || email == "" {
		utils.SetFlash(c, "danger", "Name and email are required.")
		return c.Redirect(http.StatusSeeOther, "/add_customer")
	}

	ctx := c.Request().Context()
	cust := &model.Customer{Name: name, Email: email, Phone: phone}
	if err := h.Customers.Create(ctx, cust); err != nil {
		utils.SetFlash(c, "error", "There was an issue adding the customer.")
		return c.Redirect(http.StatusSeeOther, "/add_customer")
	}
	h.Stats.Invalidate(ctx)
	publishActivity(c, "customer.created", cust, nil)

	utils.SetFlash(c, "success", "Customer added successfully.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ShowEditCustomer renders the edit form for an existing customer, or 404.
func (h *CustomerHandler) ShowEditCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	cust, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load customer failed")
	}
	return render(c, "edit_customer.html", echo.Map{"Customer": cust})
}

// EditCustomer overwrites name, email and phone of an existing customer.
func (h *CustomerHandler) EditCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	if name == "" || email == "" {
		utils.SetFlash(c, "danger", "Name and email are required.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_customer/%d", id))
	}

	ctx := c.Request().Context()
	cust := &model.Customer{ID: id, Name: name, Email: email, Phone: phone}
	if err := h.Customers.Update(ctx, cust); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		utils.SetFlash(c, "error", "There was an issue updating the customer.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_customer/%d", id))
	}

	utils.SetFlash(c, "success", "Customer updated successfully.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// DeleteCustomer removes a customer and all of its interactions in one
// transaction. A persistence failure rolls everything back and reports a
// recoverable flash message; the process keeps serving.
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	ctx := c.Request().Context()

	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load customer failed")
	}

	if err := h.Customers.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		utils.SetFlash(c, "error", "There was an issue deleting the customer.")
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	h.Stats.Invalidate(ctx)
	publishActivity(c, "customer.deleted", cust, nil)

	utils.SetFlash(c, "success", "Customer and associated interactions deleted successfully.")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ViewCustomer renders the customer detail page with its interactions.
func (h *CustomerHandler) ViewCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	ctx := c.Request().Context()
	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load customer failed")
	}
	interactions, err := h.Interactions.ListByCustomer(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "load interactions failed")
	}
	return render(c, "view_customer.html", echo.Map{
		"Customer":     cust,
		"Interactions": interactions,
	})
}

// SearchCustomer filters customers by a case-insensitive name substring.
// An empty query matches every customer.
func (h *CustomerHandler) SearchCustomer(c echo.Context) error {
	query := strings.TrimSpace(c.FormValue("query"))
	if query == "" {
		query = strings.TrimSpace(c.QueryParam("query"))
	}
	customers, err := h.Customers.SearchByName(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return render(c, "search_customer.html", echo.Map{
		"Customers": customers,
		"Query":     query,
	})
}

// publishActivity emits an activity event for downstream consumers.
// Failures are swallowed: the broker is never allowed to fail a request.
func publishActivity(c echo.Context, action string, cust *model.Customer, inter *model.Interaction) {
	actorID, _ := getUserID(c)
	ev := queue.ActivityEvent{
		Action:       action,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		ActorID:      actorID,
		OccurredAt:   time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	if inter != nil {
		ev.InteractionID = inter.ID
		ev.InteractionType = inter.Type
	}
	_ = queue_publisher.PublishActivity(c.Request().Context(), ev)
}
