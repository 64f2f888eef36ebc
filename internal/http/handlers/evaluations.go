package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ceylonsure/motor-risk/internal/core"
)

type EvaluationHandler struct {
	svc         core.EvaluationService
	assessments core.AssessmentRepo // optional; nil disables GET by id
	log         *slog.Logger
}

func NewEvaluationHandler(svc core.EvaluationService, assessments core.AssessmentRepo, log *slog.Logger) *EvaluationHandler {
	return &EvaluationHandler{svc: svc, assessments: assessments, log: log}
}

func (h *EvaluationHandler) Mount(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{assessment_id}", h.Get)
	})
}

// Create runs the full risk pipeline for one policy.
func (h *EvaluationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PolicyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assessment, err := h.svc.Evaluate(r.Context(), req.ToRecord())
	if err != nil {
		writeError(r.Context(), h.log, w, err, "Risk evaluation failed.")
		return
	}

	writeJSON(w, http.StatusCreated, assessment)
}

// Get returns a stored assessment from the audit trail.
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.assessments == nil {
		writeError(r.Context(), h.log, w, core.ErrNotFound, "Assessment audit trail is not enabled.")
		return
	}

	id := chi.URLParam(r, "assessment_id")
	assessment, err := h.assessments.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.log, w, err, "Assessment not found.")
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}
