package submissions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/services/submission"
	"gitlab.com/fcv-2025.net/submission-judge/internal/handlers"
	"gitlab.com/fcv-2025.net/submission-judge/internal/handlers/response"
)

const maxBodyBytes = 1 << 20

// SubmissionHandler serves run, submit and history
type SubmissionHandler struct {
	service submission.ISubmissionService
	logger  primary.Logger
}

func NewSubmissionHandler(service submission.ISubmissionService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the public routes on router and the authenticated ones behind mw
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/submission/run/{problemId}", h.Run).Methods("POST")
	router.HandleFunc("/submission/languages", h.Languages).Methods("GET")

	protected := router.PathPrefix("/submission").Subrouter()
	protected.Use(mw.JWTMiddleware)
	protected.HandleFunc("/submit/{problemId}", h.Submit).Methods("POST")
	protected.HandleFunc("/history/{problemId}", h.History).Methods("GET")
}

// Run evaluates against the visible test cases
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	problemID := mux.Vars(r)["problemId"]
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	verdict, err := h.service.Run(r.Context(), problemID, req.Code, req.Language)
	if err != nil {
		h.fail(w, "Failed to run code", problemID, err)
		return
	}
	response.WriteSuccess(w, verdict)
}

// Submit grades against the hidden test cases and stores the result
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	problemID := mux.Vars(r)["problemId"]
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	userID := handlers.UserIDFromContext(r.Context())
	sub, err := h.service.Submit(r.Context(), userID, problemID, req.Code, req.Language)
	if err != nil {
		h.fail(w, "Failed to submit code", problemID, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, sub)
}

// History lists the caller's finalized submissions for a problem
func (h *SubmissionHandler) History(w http.ResponseWriter, r *http.Request) {
	problemID := mux.Vars(r)["problemId"]
	userID := handlers.UserIDFromContext(r.Context())

	subs, err := h.service.History(r.Context(), userID, problemID)
	if err != nil {
		h.fail(w, "Failed to get history", problemID, err)
		return
	}
	response.WriteSuccess(w, subs)
}

func (h *SubmissionHandler) Languages(w http.ResponseWriter, _ *http.Request) {
	response.WriteSuccess(w, LanguagesResponse{Languages: h.service.Languages()})
}

func (h *SubmissionHandler) decode(w http.ResponseWriter, r *http.Request) (CodeRequest, bool) {
	var req CodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteError(w, response.ErrorMessage{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge})
			return req, false
		}
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return req, false
	}
	return req, true
}

func (h *SubmissionHandler) fail(w http.ResponseWriter, msg, problemID string, err error) {
	body := response.FromError(err)
	if body.StatusCode >= http.StatusInternalServerError {
		h.logger.Error(msg, "problemId", problemID, "error", err)
	} else {
		h.logger.Debug(msg, "problemId", problemID, "error", err)
	}
	response.WriteError(w, body)
}
