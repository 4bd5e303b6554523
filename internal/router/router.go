package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"jobtracker/internal/handler"
	"jobtracker/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessionStore session.Store,
	codec *session.CookieCodec,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid session cookie)
	secured := api.Group("", session.Middleware(sessionStore, codec))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	secured.GET("/jobs", jobHandler.List)
	secured.GET("/jobs/export", jobHandler.ExportCSV)
	secured.GET("/jobs/:id", jobHandler.Get)
	secured.POST("/jobs", jobHandler.Create)
	secured.PATCH("/jobs/:id", jobHandler.Update)
	secured.DELETE("/jobs", jobHandler.DeleteMany)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
