package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
)

const (
	// MaxUploadBytes bounds a single media upload.
	MaxUploadBytes = 100 << 20

	maxMultipartMemory = 32 << 20
	// multipartOverhead leaves room for boundaries and the text fields.
	multipartOverhead = 1 << 20

	formFieldTitle = "title"
	formFieldDesc  = "description"
)

// MediaHandler serves one media gallery.
type MediaHandler struct {
	mediaService *services.MediaService
	fileField    string
}

// MediaRouter registers gallery routes. The uploaded file is read from the
// multipart field named after the gallery kind ("video" or "photo").
func MediaRouter(r chi.Router, mediaService *services.MediaService) {
	handler := &MediaHandler{
		mediaService: mediaService,
		fileField:    string(mediaService.Kind()),
	}

	r.Get("/", handler.ListMedia)
	r.With(auth.RequireElevated).Post("/", handler.UploadMedia)
	r.With(auth.RequireElevated).Delete("/{id}", handler.DeleteMedia)
}

func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.mediaService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, string(h.mediaService.Kind()))
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > MaxUploadBytes+multipartOverhead {
		writeError(w, http.StatusRequestEntityTooLarge, uploadTooLargeMessage())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, uploadTooLargeMessage())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	upload := services.MediaUpload{
		Title:       r.FormValue(formFieldTitle),
		Description: r.FormValue(formFieldDesc),
	}

	file, header, err := r.FormFile(h.fileField)
	switch {
	case err == nil:
		defer file.Close()
		if header.Size > MaxUploadBytes {
			writeError(w, http.StatusRequestEntityTooLarge, uploadTooLargeMessage())
			return
		}
		upload.Filename = header.Filename
		upload.ContentType = header.Header.Get("Content-Type")
		upload.Size = header.Size
		upload.Body = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	item, err := h.mediaService.Upload(r.Context(), actorName(r), upload)
	if err != nil {
		writeServiceError(w, r, err, string(h.mediaService.Kind()))
		return
	}
	writeSuccess(w, http.StatusCreated, fmt.Sprintf("%s uploaded", h.mediaService.Kind()), item)
}

func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.mediaService.Delete(r.Context(), actorName(r), id); err != nil {
		writeServiceError(w, r, err, string(h.mediaService.Kind()))
		return
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("%s deleted", h.mediaService.Kind()), nil)
}

func uploadTooLargeMessage() string {
	return fmt.Sprintf("file exceeds the %s upload limit", humanize.IBytes(MaxUploadBytes))
}
