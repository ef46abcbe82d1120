package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
)

// AnnouncementRouter registers announcement routes on the given router.
func AnnouncementRouter(r chi.Router, svc *services.AnnouncementService) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "announcement")
			return
		}
		writeJSON(w, http.StatusOK, nonNil(items))
	})

	r.With(auth.RequireElevated).Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req ContentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		created, err := svc.Create(r.Context(), actorName(r), req.Title, req.Content)
		if err != nil {
			writeServiceError(w, r, err, "announcement")
			return
		}
		writeSuccess(w, http.StatusCreated, "announcement created", created)
	})

	r.With(auth.RequireElevated).Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "announcement")
			return
		}
		writeSuccess(w, http.StatusOK, "announcement deleted", nil)
	})
}

// NoteHandler provides member note endpoints.
type NoteHandler struct {
	noteService *services.NoteService
}

// NoteRouter registers note routes. Reading and writing need a session;
// deletion needs an admin.
func NoteRouter(r chi.Router, noteService *services.NoteService) {
	handler := &NoteHandler{noteService: noteService}

	r.With(auth.RequireAuthenticated).Get("/", handler.ListNotes)
	r.With(auth.RequireAuthenticated).Post("/", handler.CreateNote)
	r.With(auth.RequireAuthenticated).Put("/{id}", handler.UpdateNote)
	r.With(auth.RequireElevated).Delete("/{id}", handler.DeleteNote)
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "note")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(notes))
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	note, err := h.noteService.Create(r.Context(), actorName(r), req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err, "note")
		return
	}
	writeSuccess(w, http.StatusCreated, "note created", note)
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	note, err := h.noteService.Update(r.Context(), currentIdentity(r), id, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err, "note")
		return
	}
	writeSuccess(w, http.StatusOK, "note updated", note)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.noteService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "note")
		return
	}
	writeSuccess(w, http.StatusOK, "note deleted", nil)
}

// AdminMessageRouter registers broadcast message routes. Deleting a message
// is the consume step of client delivery, so any session may do it.
func AdminMessageRouter(r chi.Router, svc *services.AdminMessageService) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		messages, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "message")
			return
		}
		writeJSON(w, http.StatusOK, nonNil(messages))
	})

	r.With(auth.RequireElevated).Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req PostMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidRequest)
			return
		}
		created, err := svc.Post(r.Context(), actorName(r), req.Message)
		if err != nil {
			writeServiceError(w, r, err, "message")
			return
		}
		writeSuccess(w, http.StatusCreated, "message sent", created)
	})

	r.With(auth.RequireAuthenticated).Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "message")
			return
		}
		writeSuccess(w, http.StatusOK, "message deleted", nil)
	})
}

type ContentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostMessageRequest struct {
	Message string `json:"message"`
}
