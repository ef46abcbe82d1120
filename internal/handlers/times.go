package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/robotteam/clubserver/internal/auth"
	"github.com/robotteam/clubserver/internal/services"
	"github.com/robotteam/clubserver/types"
)

// TrialTimeHandler provides trial time endpoints.
type TrialTimeHandler struct {
	trialService *services.TrialTimeService
}

// TrialTimeRouter registers trial time routes on the given router.
func TrialTimeRouter(r chi.Router, trialService *services.TrialTimeService) {
	handler := &TrialTimeHandler{trialService: trialService}

	r.Get("/", handler.ListTimes)
	r.With(auth.RequireAuthenticated).Post("/", handler.CreateTime)
	r.Get("/{robot}", handler.ListRobotTimes)
	r.With(auth.RequireElevated).Delete("/{robot}/{id}", handler.DeleteTime)
}

func (h *TrialTimeHandler) ListTimes(w http.ResponseWriter, r *http.Request) {
	times, err := h.trialService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "time")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(times))
}

func (h *TrialTimeHandler) ListRobotTimes(w http.ResponseWriter, r *http.Request) {
	times, err := h.trialService.ListByRobot(r.Context(), chi.URLParam(r, "robot"))
	if err != nil {
		writeServiceError(w, r, err, "time")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(times))
}

func (h *TrialTimeHandler) CreateTime(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	trial, err := h.trialService.Create(r.Context(), actorName(r), req.Robot, req.Time)
	if err != nil {
		writeServiceError(w, r, err, "time")
		return
	}
	writeSuccess(w, http.StatusCreated, "time recorded", trial)
}

func (h *TrialTimeHandler) DeleteTime(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.trialService.Delete(r.Context(), chi.URLParam(r, "robot"), id); err != nil {
		writeServiceError(w, r, err, "time")
		return
	}
	writeSuccess(w, http.StatusOK, "time deleted", nil)
}

// RobotSettingsHandler provides robot tuning endpoints.
type RobotSettingsHandler struct {
	settingsService *services.RobotSettingsService
}

// RobotSettingsRouter registers robot settings routes on the given router.
func RobotSettingsRouter(r chi.Router, settingsService *services.RobotSettingsService) {
	handler := &RobotSettingsHandler{settingsService: settingsService}

	r.With(auth.RequireAuthenticated).Get("/{robot}", handler.GetSettings)
	r.With(auth.RequireElevated).Post("/", handler.SaveSettings)
}

func (h *RobotSettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context(), chi.URLParam(r, "robot"))
	if err != nil {
		writeServiceError(w, r, err, "robot settings")
		return
	}
	writeJSON(w, http.StatusOK, settings.Snapshot())
}

func (h *RobotSettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req types.RobotSettings
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	saved, err := h.settingsService.Save(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "robot settings")
		return
	}
	writeSuccess(w, http.StatusOK, "robot settings saved", saved)
}

type CreateTimeRequest struct {
	Robot string `json:"robot"`
	Time  string `json:"time"`
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
