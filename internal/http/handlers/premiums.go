package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ceylonsure/motor-risk/internal/core"
)

type PremiumHandler struct {
	profile core.PremiumProfile
	renewal core.RenewalService
	log     *slog.Logger
}

func NewPremiumHandler(profile core.PremiumProfile, renewal core.RenewalService, log *slog.Logger) *PremiumHandler {
	return &PremiumHandler{profile: profile, renewal: renewal, log: log}
}

func (h *PremiumHandler) Mount(r chi.Router) {
	r.Route("/premiums", func(r chi.Router) {
		r.Post("/quote", h.Quote)
		r.Post("/renewal", h.Renewal)
	})
}

type quoteRequest struct {
	RiskPercent   float64 `json:"risk_percent" validate:"gte=0,lte=100"`
	BasePremium   float64 `json:"base_premium" validate:"required,gt=0"`
	NCBPercentage float64 `json:"ncb_percentage" validate:"gte=0,lte=70"`
	OtherDiscount float64 `json:"other_discount" validate:"gte=0"`
}

// Quote prices a new-business policy from an already known risk
// percent and base premium.
func (h *PremiumHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	breakdown := h.profile.Price(req.RiskPercent, req.BasePremium, req.NCBPercentage, req.OtherDiscount)
	writeJSON(w, http.StatusOK, breakdown)
}

type renewalRequest struct {
	Policy        PolicyRequest `json:"policy" validate:"required"`
	SumInsured    float64       `json:"sum_insured" validate:"required,gt=0"`
	NCBPercentage float64       `json:"ncb_percentage" validate:"gte=0,lte=70"`
	OtherDiscount float64       `json:"other_discount" validate:"gte=0"`
}

// Renewal prices a renewal from the secondary model's expected claim.
func (h *PremiumHandler) Renewal(w http.ResponseWriter, r *http.Request) {
	var req renewalRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.renewal.Evaluate(r.Context(), req.Policy.ToRecord(),
		req.SumInsured, req.NCBPercentage, req.OtherDiscount)
	if err != nil {
		writeError(r.Context(), h.log, w, err, "Renewal evaluation failed.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
