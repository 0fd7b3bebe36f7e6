package http

import (
	"net/http"

	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.NoteCreate
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.services.NoteService.CreateNote(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := caller(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), ownerID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), ownerID, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	var patch models.NoteUpdate
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.services.NoteService.UpdateNote(r.Context(), ownerID, noteID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, noteID, ok := callerAndID(w, r)
	if !ok {
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), ownerID, noteID); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "note deleted successfully"}, http.StatusOK)
}
