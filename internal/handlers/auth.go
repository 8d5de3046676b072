package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/middleware/auth"
	"github.com/Skotchmaster/silver_admin/internal/service"
	"github.com/Skotchmaster/silver_admin/internal/session"
	"github.com/Skotchmaster/silver_admin/internal/transport"
)

type AuthHandler struct {
	Accounts     *service.AccountService
	Sessions     *session.Manager
	Flash        *flash.Store
	CookieSecure bool
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	if auth.IdentityFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return render(c, h.Flash, http.StatusOK, "login.html", Page{
		Title: "Log in",
		Next:  c.QueryParam("next"),
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	if auth.IdentityFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := transport.LoginFormFrom(params)
	next := params.Get("next")
	if next == "" {
		next = c.QueryParam("next")
	}

	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	acc, err := h.Accounts.Authenticate(ctx, form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_rejected", "status", http.StatusUnauthorized, "handle", form.Handle)
			return render(c, h.Flash, http.StatusUnauthorized, "login.html", Page{
				Title:  "Log in",
				Error:  "Invalid username or password.",
				Next:   next,
				Handle: form.Handle,
			})
		}
		return internalError(c, "login", err)
	}

	issued, err := h.Sessions.Create(ctx, acc.ID)
	if err != nil {
		return internalError(c, "login", err)
	}
	c.SetCookie(auth.CreateCookie(auth.SessionCookie, issued.Token, "/", issued.ExpiresAt, h.CookieSecure))

	l.Info("login", "account_id", acc.ID)
	return redirect(c, h.Flash, flash.Success, "Welcome, "+acc.Handle+"!", safeNext(next))
}

func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if auth.IdentityFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return render(c, h.Flash, http.StatusOK, "register.html", Page{Title: "Register"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	if auth.IdentityFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := transport.RegisterFormFrom(params)

	_, err = h.Accounts.Register(c.Request().Context(), form)
	if err != nil {
		page := Page{Title: "Register", Handle: form.Handle}
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			page.Error = ve.Message
			return render(c, h.Flash, http.StatusUnprocessableEntity, "register.html", page)
		case errors.Is(err, service.ErrConflict):
			page.Error = "Username already exists."
			return render(c, h.Flash, http.StatusConflict, "register.html", page)
		}
		return internalError(c, "register", err)
	}

	return redirect(c, h.Flash, flash.Success, "Registration successful. You can now log in.", "/login")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	id := auth.IdentityFrom(c)
	if err := h.Sessions.Destroy(c.Request().Context(), id.Token); err != nil {
		return internalError(c, "logout", err)
	}
	c.SetCookie(auth.DeleteCookie(auth.SessionCookie, "/", h.CookieSecure))
	return redirect(c, h.Flash, flash.Success, "You have been logged out.", "/")
}
