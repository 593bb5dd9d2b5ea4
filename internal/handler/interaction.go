package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tberkay/customer-crm/internal/cache"
	"github.com/tberkay/customer-crm/internal/model"
	"github.com/tberkay/customer-crm/internal/repository"
	"github.com/tberkay/customer-crm/internal/utils"
)

// InteractionHandler bundles dependencies for the interaction pages.
// Interactions are always reached through their owning customer, so the
// handler needs both repositories.
type InteractionHandler struct {
	Customers    *repository.CustomerRepo
	Interactions *repository.InteractionRepo
	Stats        *cache.StatsCache
}

func NewInteractionHandler(cr *repository.CustomerRepo, ir *repository.InteractionRepo, st *cache.StatsCache) *InteractionHandler {
	if cr == nil || ir == nil || st == nil {
		panic("nil dependency passed to NewInteractionHandler")
	}
	return &InteractionHandler{Customers: cr, Interactions: ir, Stats: st}
}

// ShowAddInteraction renders the log-interaction form for a customer, or
// 404 when the customer does not exist.
func (h *InteractionHandler) ShowAddInteraction(c echo.Context) error {
	customerID, err := parseID(c, "customer_id")
	if err != nil {
		return notFound(c)
	}
	cust, err := h.Customers.GetByID(c.Request().Context(), customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load customer failed")
	}
	return render(c, "add_interaction.html", echo.Map{
		"Customer": cust,
		"Types":    model.InteractionTypes,
	})
}

// AddInteraction creates an interaction for the customer named in the URL.
// The type list is advisory only: any non-empty value is accepted.
func (h *InteractionHandler) AddInteraction(c echo.Context) error {
	customerID, err := parseID(c, "customer_id")
	if err != nil {
		return notFound(c)
	}
	ctx := c.Request().Context()

	cust, err := h.Customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load customer failed")
	}

	itype := strings.TrimSpace(c.FormValue("type"))
	notes := strings.TrimSpace(c.FormValue("notes"))
	if itype == "" {
		utils.SetFlash(c, "danger", "Interaction type is required.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/add_interaction/%d", customerID))
	}

	inter := &model.Interaction{CustomerID: customerID, Type: itype, Notes: notes}
	if err := h.Interactions.Create(ctx, inter); err != nil {
		utils.SetFlash(c, "error", "There was an issue adding the interaction.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/add_interaction/%d", customerID))
	}
	h.Stats.Invalidate(ctx)
	publishActivity(c, "interaction.logged", cust, inter)

	utils.SetFlash(c, "success", "Interaction added successfully.")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/view_customer/%d", customerID))
}

// ShowEditInteraction renders the edit form for an interaction, or 404.
func (h *InteractionHandler) ShowEditInteraction(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	inter, err := h.Interactions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load interaction failed")
	}
	return render(c, "edit_interaction.html", echo.Map{
		"Interaction": inter,
		"Types":       model.InteractionTypes,
	})
}

// EditInteraction overwrites type and notes of an existing interaction and
// returns to the owning customer's detail page.
func (h *InteractionHandler) EditInteraction(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	ctx := c.Request().Context()

	existing, err := h.Interactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load interaction failed")
	}

	itype := strings.TrimSpace(c.FormValue("type"))
	notes := strings.TrimSpace(c.FormValue("notes"))
	if itype == "" {
		utils.SetFlash(c, "danger", "Interaction type is required.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_interaction/%d", id))
	}

	inter := &model.Interaction{ID: id, CustomerID: existing.CustomerID, Type: itype, Notes: notes}
	if err := h.Interactions.Update(ctx, inter); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		utils.SetFlash(c, "error", "There was an issue updating the interaction.")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit_interaction/%d", id))
	}

	utils.SetFlash(c, "success", "Interaction updated successfully.")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/view_customer/%d", existing.CustomerID))
}

// DeleteInteraction removes one interaction. The owning customer id is read
// before the delete so the redirect target survives the row's removal; the
// failure flash carries the underlying error detail.
func (h *InteractionHandler) DeleteInteraction(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return notFound(c)
	}
	ctx := c.Request().Context()

	existing, err := h.Interactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "load interaction failed")
	}
	customerID := existing.CustomerID

	if err := h.Interactions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c)
		}
		utils.SetFlash(c, "error", fmt.Sprintf("There was an issue deleting the interaction: %v", err))
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/view_customer/%d", customerID))
	}
	h.Stats.Invalidate(ctx)

	utils.SetFlash(c, "success", "Interaction deleted successfully.")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/view_customer/%d", customerID))
}
