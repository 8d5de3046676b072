package auth

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/silver_admin/internal/flash"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/service"
	"github.com/Skotchmaster/silver_admin/internal/session"
)

const (
	identityKey    = "identity"
	identityErrKey = "identity_error"
)

// Identity is the caller of the current request. The zero value is anonymous.
type Identity struct {
	AccountID uint
	Handle    string
	IsAdmin   bool
	Token     string
}

func (i Identity) Authenticated() bool { return i.AccountID != 0 }

type Rejection struct {
	Location string
	Flash    flash.Message
	Reason   string
}

// Rule decides whether an identity may continue. nil means allowed.
type Rule func(c echo.Context, id Identity) *Rejection

type Guard struct {
	Sessions     *session.Manager
	Accounts     *service.AccountService
	Flash        *flash.Store
	CookieSecure bool
}

// Identify resolves the session cookie once per request and stores the
// resulting Identity on the context.
func (g *Guard) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := g.identify(c)
		c.Set(identityKey, id)
		if err != nil {
			c.Set(identityErrKey, err)
		}
		return next(c)
	}
}

// identify returns an error only when the store could not answer; the caller
// is then anonymous for public pages but guarded pages fail.
func (g *Guard) identify(c echo.Context) (Identity, error) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return Identity{}, nil
	}
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	accountID, err := g.Sessions.Resolve(ctx, ck.Value)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			l.Error("session_resolve_error", "error", err)
			return Identity{}, err
		}
		c.SetCookie(DeleteCookie(SessionCookie, "/", g.CookieSecure))
		return Identity{}, nil
	}

	acc, err := g.Accounts.Get(ctx, accountID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			l.Error("identity_load_error", "account_id", accountID, "error", err)
			return Identity{}, err
		}
		if err := g.Sessions.Destroy(ctx, ck.Value); err != nil {
			l.Error("session_destroy_error", "error", err)
		}
		c.SetCookie(DeleteCookie(SessionCookie, "/", g.CookieSecure))
		return Identity{}, nil
	}

	return Identity{
		AccountID: acc.ID,
		Handle:    acc.Handle,
		IsAdmin:   acc.IsAdmin,
		Token:     ck.Value,
	}, nil
}

func IdentityFrom(c echo.Context) Identity {
	if id, ok := c.Get(identityKey).(Identity); ok {
		return id
	}
	return Identity{}
}

func Authenticated(c echo.Context, id Identity) *Rejection {
	if id.Authenticated() {
		return nil
	}
	return &Rejection{
		Location: "/login?next=" + url.QueryEscape(c.Request().URL.RequestURI()),
		Flash:    flash.Message{Category: flash.Info, Text: "Please log in to access this page."},
		Reason:   "not authenticated",
	}
}

func Admin(c echo.Context, id Identity) *Rejection {
	if rej := Authenticated(c, id); rej != nil {
		return rej
	}
	if id.IsAdmin {
		return nil
	}
	return &Rejection{
		Location: "/",
		Flash:    flash.Message{Category: flash.Danger, Text: "You don't have permission to access this page."},
		Reason:   "not an admin",
	}
}

func (g *Guard) Check(c echo.Context, rule Rule) (Identity, *Rejection) {
	id := IdentityFrom(c)
	return id, rule(c, id)
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.require(Authenticated, next)
}

func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.require(Admin, next)
}

func (g *Guard) require(rule Rule, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, failed := c.Get(identityErrKey).(error); failed {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		id, rej := g.Check(c, rule)
		if rej == nil {
			return next(c)
		}

		logging.FromContext(c.Request().Context()).Warn("auth_denied",
			"path", c.Request().URL.Path,
			"account_id", id.AccountID,
			"reason", rej.Reason,
		)
		if err := g.Flash.Add(c, rej.Flash.Category, rej.Flash.Text); err != nil {
			logging.FromContext(c.Request().Context()).Error("flash_error", "error", err)
		}
		return c.Redirect(http.StatusSeeOther, rej.Location)
	}
}
