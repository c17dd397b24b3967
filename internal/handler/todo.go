package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     *int64 `json:"due_date"`
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	todo, err := h.todoService.Create(service.TodoInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to create todo")
		return
	}

	response.JSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Todos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.Todos()
	if err != nil {
		writeServiceError(w, r, err, "failed to get todos")
		return
	}

	response.JSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req todoRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	todo, err := h.todoService.Update(id, service.TodoInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to update todo")
		return
	}

	response.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.todoService.Toggle(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to toggle todo")
		return
	}

	response.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.todoService.Delete(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to delete todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) DeleteCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := h.todoService.PurgeCompleted()
	if err != nil {
		writeServiceError(w, r, err, "failed to delete completed todos")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
