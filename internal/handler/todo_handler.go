package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/joebanks10/todo-api/internal/errors"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/service"
)

// TodoHandler handles the ownership-scoped todo endpoints. Every route is
// behind the auth middleware, so currentUser never returns nil here.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTodoRequest represents a partial todo update. Absent fields are
// left unchanged.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoResponse wraps a single todo.
type TodoResponse struct {
	Todo *model.Todo `json:"todo"`
}

// TodoListResponse wraps a todo collection.
type TodoListResponse struct {
	Todos []model.Todo `json:"todos"`
}

// respondError renders a domain error. Not-found and unauthorized are sent
// with empty bodies so nothing leaks about why the request failed.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	switch httpErr.StatusCode {
	case http.StatusNotFound, http.StatusUnauthorized:
		return c.NoContent(httpErr.StatusCode)
	default:
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errors.ErrorResponse
// @Security XAuth
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.Create(c.Request().Context(), currentUser(c).ID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

// List godoc
// @Summary List the caller's todos
// @Tags todos
// @Produce json
// @Success 200 {object} TodoListResponse
// @Security XAuth
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	todos, err := h.todoService.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, TodoListResponse{Todos: todos})
}

// Get godoc
// @Summary Get a todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 404 "empty body"
// @Security XAuth
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	todo, err := h.todoService.Get(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Delete godoc
// @Summary Delete a todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 404 "empty body"
// @Security XAuth
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	todo, err := h.todoService.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Update godoc
// @Summary Patch a todo by id
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} TodoResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 "empty body"
// @Security XAuth
// @Router /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := service.TodoPatch{Text: req.Text, Completed: req.Completed}
	todo, err := h.todoService.Update(c.Request().Context(), currentUser(c).ID, c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}
