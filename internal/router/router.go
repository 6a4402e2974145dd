package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/joebanks10/todo-api/internal/handler"
	"github.com/joebanks10/todo-api/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authService service.AuthService,
	userHandler *handler.UserHandler,
	todoHandler *handler.TodoHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users", userHandler.Signup)
	e.POST("/users/login", userHandler.Login)

	// Secured routes (require a valid x-auth token)
	secured := e.Group("", handler.RequireAuth(authService))

	secured.GET("/users/me", userHandler.Me)
	secured.DELETE("/users/me/token", userHandler.Logout)

	secured.POST("/todos", todoHandler.Create)
	secured.GET("/todos", todoHandler.List)
	secured.GET("/todos/:id", todoHandler.Get)
	secured.DELETE("/todos/:id", todoHandler.Delete)
	secured.PATCH("/todos/:id", todoHandler.Update)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
