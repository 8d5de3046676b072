package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/middleware/auth"
	"github.com/Skotchmaster/silver_admin/internal/service"
)

const usersPath = "/admin/users"

type AccountHandler struct {
	Accounts *service.AccountService
	Flash    *flash.Store
}

func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.Accounts.List(c.Request().Context())
	if err != nil {
		return internalError(c, "list_accounts", err)
	}
	return render(c, h.Flash, http.StatusOK, "users.html", Page{Title: "Users", Accounts: accounts})
}

func (h *AccountHandler) Grant(c echo.Context) error {
	return h.setRole(c, true)
}

func (h *AccountHandler) Revoke(c echo.Context) error {
	return h.setRole(c, false)
}

func (h *AccountHandler) setRole(c echo.Context, isAdmin bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor := auth.IdentityFrom(c)

	acc, err := h.Accounts.SetRole(c.Request().Context(), actor.AccountID, id, isAdmin)
	switch {
	case errors.Is(err, service.ErrSelfDemote):
		return redirect(c, h.Flash, flash.Danger, "You cannot revoke your own admin rights.", usersPath)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case err != nil:
		return internalError(c, "set_role", err)
	}

	if isAdmin {
		return redirect(c, h.Flash, flash.Success, acc.Handle+" is now an admin.", usersPath)
	}
	return redirect(c, h.Flash, flash.Success, acc.Handle+" is no longer an admin.", usersPath)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	actor := auth.IdentityFrom(c)

	err = h.Accounts.Delete(c.Request().Context(), actor.AccountID, id)
	switch {
	case errors.Is(err, service.ErrSelfDelete):
		return redirect(c, h.Flash, flash.Danger, "You cannot delete your own account.", usersPath)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case err != nil:
		return internalError(c, "delete_account", err)
	}
	return redirect(c, h.Flash, flash.Success, "User deleted successfully.", usersPath)
}
