package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/middleware/auth"
	"github.com/Skotchmaster/silver_admin/internal/middleware/csrf"
	"github.com/Skotchmaster/silver_admin/internal/models"
	"github.com/Skotchmaster/silver_admin/internal/transport"
	"github.com/Skotchmaster/silver_admin/internal/util"
)

// Page is the data every template receives.
type Page struct {
	Title     string
	Identity  auth.Identity
	Flashes   []flash.Message
	CSRFToken string
	Error     string

	Next   string
	Handle string

	Products []models.Product
	Pager    *util.Pager
	Form     transport.ProductForm
	Action   string

	Accounts []models.Account
}

func render(c echo.Context, fl *flash.Store, status int, name string, p Page) error {
	p.Identity = auth.IdentityFrom(c)
	p.CSRFToken = csrf.Token(c)
	p.Flashes = fl.Pop(c)
	return c.Render(status, name, p)
}

func redirect(c echo.Context, fl *flash.Store, category, text, location string) error {
	if err := fl.Add(c, category, text); err != nil {
		logging.FromContext(c.Request().Context()).Error("flash_error", "error", err)
	}
	return c.Redirect(http.StatusSeeOther, location)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func internalError(c echo.Context, action string, err error) error {
	logging.FromContext(c.Request().Context()).Error(action+"_error", "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
