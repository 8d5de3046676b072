package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/silver_admin/internal/db"
	"github.com/Skotchmaster/silver_admin/internal/handlers"
	"github.com/Skotchmaster/silver_admin/internal/logging"
	"github.com/Skotchmaster/silver_admin/internal/middleware/auth"
	"github.com/Skotchmaster/silver_admin/internal/middleware/csrf"
)

type Deps struct {
	DB             *gorm.DB
	Guard          *auth.Guard
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	AccountHandler *handlers.AccountHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("readiness_error", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	site := e.Group("", d.Guard.Identify)

	site.GET("/", d.ProductHandler.Index)
	site.GET("/login", d.AuthHandler.LoginForm)
	site.POST("/login", d.AuthHandler.Login)
	site.GET("/register", d.AuthHandler.RegisterForm)
	site.POST("/register", d.AuthHandler.Register)
	site.GET("/logout", d.AuthHandler.Logout, d.Guard.RequireAuth)

	admin := site.Group("/admin", d.Guard.RequireAdmin)

	admin.GET("", d.ProductHandler.AdminList)
	admin.GET("/create", d.ProductHandler.CreateForm)
	admin.POST("/create", d.ProductHandler.Create)
	admin.GET("/update/:id", d.ProductHandler.UpdateForm)
	admin.POST("/update/:id", d.ProductHandler.Update)
	admin.Match([]string{http.MethodGet, http.MethodPost}, "/delete/:id", d.ProductHandler.Delete, csrf.SameSiteGET)

	users := admin.Group("/users")

	users.GET("", d.AccountHandler.List)
	users.Match([]string{http.MethodGet, http.MethodPost}, "/grant/:id", d.AccountHandler.Grant, csrf.SameSiteGET)
	users.Match([]string{http.MethodGet, http.MethodPost}, "/revoke/:id", d.AccountHandler.Revoke, csrf.SameSiteGET)
	users.Match([]string{http.MethodGet, http.MethodPost}, "/delete/:id", d.AccountHandler.Delete, csrf.SameSiteGET)
}
