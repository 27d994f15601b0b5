package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/hirevox/interview-engine/internal/domain"
	"github.com/hirevox/interview-engine/internal/interview"
	"github.com/hirevox/interview-engine/internal/report"
	"github.com/hirevox/interview-engine/internal/store"
)

// Handler wires the HTTP API to the session store, flow controller and
// report generator.
type Handler struct {
	store      *store.Store
	controller *interview.Controller
	reports    *report.Generator
	logger     *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHandler(st *store.Store, ctrl *interview.Controller, gen *report.Generator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:      st,
		controller: ctrl,
		reports:    gen,
		logger:     logger,
		locks:      map[string]*sync.Mutex{},
	}
}

// sessionLock serializes flow operations per session so concurrent
// responses cannot interleave state transitions.
func (h *Handler) sessionLock(id string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.locks[id]
	if !ok {
		l = &sync.Mutex{}
		h.locks[id] = l
	}
	return l
}

// Routes mounts all API endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/resume/upload", h.uploadResume)
		r.Get("/resume/{resumeID}", h.getResume)
		r.Delete("/resume/{resumeID}", h.deleteResume)

		r.Post("/interview/create", h.createInterview)
		r.Post("/interview/{sessionID}/start", h.startInterview)
		r.Post("/interview/{sessionID}/respond", h.respond)
		r.Post("/interview/{sessionID}/end", h.endInterview)
		r.Get("/interview/{sessionID}/status", h.status)
		r.Get("/interview/{sessionID}/history", h.history)

		r.Get("/report/{sessionID}", h.getReport)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors to HTTP status codes.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var transition *domain.InvalidTransitionError
	var inactive *domain.SessionInactiveError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrResumeNotFound):
		writeError(w, http.StatusNotFound, "resume not found")
	case errors.As(err, &transition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &inactive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed",
			slog.String("request_id", GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type uploadResumeResponse struct {
	ResumeID string               `json:"resume_id"`
	Resume   domain.ResumeProfile `json:"resume"`
}

func (h *Handler) uploadResume(w http.ResponseWriter, r *http.Request) {
	var profile domain.ResumeProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid resume payload: "+err.Error())
		return
	}
	id := h.store.StageResume(profile)
	writeJSON(w, http.StatusOK, uploadResumeResponse{ResumeID: id, Resume: profile})
}

func (h *Handler) getResume(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.GetResume(chi.URLParam(r, "resumeID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) deleteResume(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteResume(chi.URLParam(r, "resumeID")) {
		writeError(w, http.StatusNotFound, "resume not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type createInterviewRequest struct {
	ResumeID string                `json:"resume_id,omitempty"`
	Resume   *domain.ResumeProfile `json:"resume,omitempty"`
	Job      domain.JobSpec        `json:"job"`
}

type createInterviewResponse struct {
	SessionID string                `json:"session_id"`
	State     domain.InterviewState `json:"state"`
}

func (h *Handler) createInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var resume domain.ResumeProfile
	switch {
	case req.Resume != nil:
		resume = *req.Resume
	case req.ResumeID != "":
		staged, err := h.store.GetResume(req.ResumeID)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		resume = staged
	default:
		writeError(w, http.StatusBadRequest, "resume or resume_id is required")
		return
	}

	session := h.store.Create(resume, req.Job)
	h.logger.Info("session created",
		slog.String("session_id", session.ID),
		slog.String("candidate", resume.NameOrDefault()),
	)
	writeJSON(w, http.StatusOK, createInterviewResponse{SessionID: session.ID, State: session.State})
}

type chatResponse struct {
	SessionID string                `json:"session_id"`
	State     domain.InterviewState `json:"state"`
	Message   string                `json:"message"`
	IsActive  bool                  `json:"is_active"`
	Progress  domain.Progress       `json:"progress"`
}

func (h *Handler) startInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := h.store.Get(id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	msg, err := h.controller.StartInterview(r.Context(), session)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.store.Update(session)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: session.ID,
		State:     session.State,
		Message:   msg.Content,
		IsActive:  interview.IsActive(session.State),
		Progress:  session.Progress(),
	})
}

type respondRequest struct {
	Message string `json:"message"`
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	id := chi.URLParam(r, "sessionID")
	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := h.store.Get(id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if !interview.IsActive(session.State) {
		h.writeDomainError(w, r, &domain.SessionInactiveError{ID: session.ID, State: session.State})
		return
	}

	msg, err := h.controller.ProcessResponse(r.Context(), session, req.Message)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.store.Update(session)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: session.ID,
		State:     session.State,
		Message:   msg.Content,
		IsActive:  interview.IsActive(session.State),
		Progress:  session.Progress(),
	})
}

type endRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *Handler) endInterview(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	id := chi.URLParam(r, "sessionID")
	lock := h.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := h.store.Get(id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if interview.IsTerminal(session.State) {
		h.writeDomainError(w, r, &domain.SessionInactiveError{ID: session.ID, State: session.State})
		return
	}

	msg, err := h.controller.EndInterviewEarly(r.Context(), session, req.Reason)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.store.Update(session)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: session.ID,
		State:     session.State,
		Message:   msg.Content,
		IsActive:  false,
		Progress:  session.Progress(),
	})
}

type statusResponse struct {
	SessionID  string                `json:"session_id"`
	State      domain.InterviewState `json:"state"`
	IsActive   bool                  `json:"is_active"`
	IsTerminal bool                  `json:"is_terminal"`
	Progress   domain.Progress       `json:"progress"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		SessionID:  session.ID,
		State:      session.State,
		IsActive:   interview.IsActive(session.State),
		IsTerminal: interview.IsTerminal(session.State),
		Progress:   session.Progress(),
	})
}

type historyResponse struct {
	SessionID string                `json:"session_id"`
	State     domain.InterviewState `json:"state"`
	Messages  []domain.ChatMessage  `json:"messages"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{
		SessionID: session.ID,
		State:     session.State,
		Messages:  session.Messages,
	})
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if !interview.IsTerminal(session.State) {
		writeError(w, http.StatusConflict, "interview is still in progress")
		return
	}
	writeJSON(w, http.StatusOK, h.reports.Generate(r.Context(), session))
}
