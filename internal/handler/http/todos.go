package http

import (
	"net/http"

	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
)

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.TodoCreate
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.CreateTodo(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusCreated)
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := caller(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todos, err := h.services.TodoService.ListTodos(r.Context(), ownerID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todos, http.StatusOK)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, todoID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	todo, err := h.services.TodoService.GetTodo(r.Context(), ownerID, todoID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, todoID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	var patch models.TodoUpdate
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.UpdateTodo(r.Context(), ownerID, todoID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, todoID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	todo, err := h.services.TodoService.ToggleTodo(r.Context(), ownerID, todoID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	ownerID, todoID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	if err := h.services.TodoService.DeleteTodo(r.Context(), ownerID, todoID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "todo deleted successfully"}, http.StatusOK)
}
