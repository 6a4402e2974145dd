package handler

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/joebanks10/todo-api/internal/auth"
	"github.com/joebanks10/todo-api/internal/service"
)

// RequireAuth builds the middleware guarding authenticated routes. The
// token travels in the x-auth header; verification checks the signature
// and the user's stored token list, so revoked tokens are rejected. Any
// failure short-circuits with a bare 401 before the handler runs.
func RequireAuth(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKeyUser,
		TokenLookup: "header:" + auth.HeaderXAuth,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.VerifyToken(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.NoContent(http.StatusUnauthorized)
		},
	})
}
