package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ceylonsure/motor-risk/internal/core"
)

// QuotationHandler runs risk evaluation and premium calculation in one
// round trip, the flow the registration form drives.
type QuotationHandler struct {
	svc     core.EvaluationService
	profile core.PremiumProfile
	log     *slog.Logger
}

func NewQuotationHandler(svc core.EvaluationService, profile core.PremiumProfile, log *slog.Logger) *QuotationHandler {
	return &QuotationHandler{svc: svc, profile: profile, log: log}
}

func (h *QuotationHandler) Mount(r chi.Router) {
	r.Post("/quotations", h.Create)
}

type quotationRequest struct {
	Policy        PolicyRequest `json:"policy" validate:"required"`
	BasePremium   float64       `json:"base_premium" validate:"required,gt=0"`
	OtherDiscount float64       `json:"other_discount" validate:"gte=0"`
}

type quotationResponse struct {
	Assessment core.RiskAssessment    `json:"assessment"`
	Premium    core.PremiumBreakdown  `json:"premium"`
}

func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quotationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	policy := req.Policy.ToRecord()

	assessment, err := h.svc.Evaluate(r.Context(), policy)
	if err != nil {
		writeError(r.Context(), h.log, w, err, "Risk evaluation failed.")
		return
	}

	// No partial answers: premium only prices an assessment that
	// succeeded above.
	ncb, _ := policy.Number(core.FieldNCBPercent)
	premium := h.profile.Price(
		assessment.RiskProbability*100.0,
		req.BasePremium,
		ncb,
		req.OtherDiscount,
	)

	writeJSON(w, http.StatusCreated, quotationResponse{
		Assessment: assessment,
		Premium:    premium,
	})
}
