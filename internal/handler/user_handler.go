package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/joebanks10/todo-api/internal/auth"
	apperrors "github.com/joebanks10/todo-api/internal/errors"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/service"
)

// UserHandler handles registration, login and session endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// currentUser returns the user resolved by the auth middleware.
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(auth.ContextKeyUser).(*model.User)
	return user
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user and issues a token in the x-auth response header.
// @Tags users
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "SIGNUP_FAILED",
		})
	}

	c.Response().Header().Set(auth.HeaderXAuth, token)
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login with email and password
// @Description Issues a fresh token in the x-auth response header.
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			httpErr := apperrors.MapErrorToHTTP(err)
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	c.Response().Header().Set(auth.HeaderXAuth, token)
	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 "empty body"
// @Security XAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

// Logout godoc
// @Summary Revoke the presented token
// @Description Removes the token from the user's stored token list. Other tokens stay valid.
// @Tags users
// @Success 200 "empty body"
// @Failure 401 "empty body"
// @Security XAuth
// @Router /users/me/token [delete]
func (h *UserHandler) Logout(c echo.Context) error {
	user := currentUser(c)
	token := c.Request().Header.Get(auth.HeaderXAuth)

	if err := h.authService.RevokeToken(c.Request().Context(), user.ID, token); err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}
	return c.NoContent(http.StatusOK)
}
