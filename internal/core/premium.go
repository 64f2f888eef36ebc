package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PremiumBreakdown itemizes every intermediate monetary quantity so
// the caller can render a full audit trail. All amounts are LKR,
// rounded to 2 decimals at output; rates are percentages.
type PremiumBreakdown struct {
	BasePremium float64 `json:"base_premium"`
	RiskPercent float64 `json:"risk_percent"`

	RiskLoadingPercent float64 `json:"risk_loading_percent"`
	RiskLoadingAmount  float64 `json:"risk_loading_amount"`

	NCBPercentage float64 `json:"ncb_percentage"`
	NCBDiscount   float64 `json:"ncb_discount"`

	OtherDiscount float64 `json:"other_discount"`

	// Renewal variant only; zero for new business.
	RebatePercent float64 `json:"rebate_percent,omitempty"`
	RebateAmount  float64 `json:"rebate_amount,omitempty"`

	TotalDiscount float64 `json:"total_discount"`

	NetPremiumBeforeFees float64 `json:"net_premium_before_fees"`

	AdminFeeRatePercent float64 `json:"admin_fee_rate_percent"`
	AdminFee            float64 `json:"admin_fee"`
	PolicyFee           float64 `json:"policy_fee"`

	PremiumBeforeVAT float64 `json:"premium_before_vat"`

	VATRatePercent float64 `json:"vat_rate_percent"`
	VATAmount      float64 `json:"vat_amount"`

	TotalPayable float64 `json:"total_payable"`
}

// PremiumProfile carries the underwriting rule constants. One profile
// per deployment; values are configuration, not computed.
type PremiumProfile struct {
	AdminFeeRate float64 // fraction, e.g. 0.0291
	PolicyFee    float64 // flat, LKR
	VATRate      float64 // fraction, e.g. 0.18
	MinPremium   float64 // floor for sum-insured derived base premiums
}

// DefaultPremiumProfile matches the company tariff sheet.
func DefaultPremiumProfile() PremiumProfile {
	return PremiumProfile{
		AdminFeeRate: 0.0291,
		PolicyFee:    200.0,
		VATRate:      0.18,
		MinPremium:   5000.0,
	}
}

// RiskLoadingPercent is the underwriting loading step function over
// risk percent (0-100).
func RiskLoadingPercent(riskPercent float64) float64 {
	switch {
	case riskPercent < 15:
		return 0.00
	case riskPercent < 25:
		return 0.10
	case riskPercent < 40:
		return 0.25
	default:
		return 0.50
	}
}

// RebateRate is the renewal rebate step function over sum insured.
func RebateRate(sumInsured float64) float64 {
	switch {
	case sumInsured >= 8_000_000:
		return 0.20
	case sumInsured >= 7_000_000:
		return 0.15
	case sumInsured >= 5_000_000:
		return 0.125
	case sumInsured >= 3_100_000:
		return 0.10
	default:
		return 0.0
	}
}

// tariffRates maps normalized vehicle type to base rate on sum
// insured. Unknown types fall back to the private car rate.
var tariffRates = map[string]float64{
	"car":           0.028,
	"suv":           0.030,
	"van":           0.032,
	"truck":         0.035,
	"motorcycle":    0.022,
	"three-wheeler": 0.024,
	"bus":           0.038,
}

const defaultTariffRate = 0.028

// commercialUsages attract the commercial loading multiplier.
var commercialUsages = map[string]struct{}{
	"business":   {},
	"rent":       {},
	"taxi":       {},
	"hire":       {},
	"commercial": {},
	"school":     {},
}

const commercialMultiplier = 1.35

// BasePremiumFromSumInsured derives a base premium from sum insured
// via the tariff table, applying the commercial multiplier for
// commercial-like usage, floored at the profile's minimum premium.
func (p PremiumProfile) BasePremiumFromSumInsured(sumInsured float64, vehicleType, usageType string) float64 {
	rate, ok := tariffRates[strings.ToLower(strings.TrimSpace(vehicleType))]
	if !ok {
		rate = defaultTariffRate
	}

	base := sumInsured * rate
	if _, commercial := commercialUsages[strings.ToLower(strings.TrimSpace(usageType))]; commercial {
		base *= commercialMultiplier
	}

	return max(base, p.MinPremium)
}

// Price maps risk percent and the discount inputs to a full premium
// breakdown. Pure: identical inputs yield byte-identical output.
// Internal math stays in full float precision; rounding happens once,
// at output. The engine floors net premium at zero but does not reject
// non-positive base premiums; that is the caller's validation concern.
func (p PremiumProfile) Price(riskPercent, basePremium, ncbPercent, otherDiscount float64) PremiumBreakdown {
	return p.price(riskPercent, basePremium, ncbPercent, otherDiscount, 0)
}

// PriceRenewal is the renewal variant: base premium derived from sum
// insured and the sum-insured rebate joins the discounts.
func (p PremiumProfile) PriceRenewal(riskPercent, sumInsured, ncbPercent, otherDiscount float64, vehicleType, usageType string) PremiumBreakdown {
	base := p.BasePremiumFromSumInsured(sumInsured, vehicleType, usageType)
	rebateRate := RebateRate(sumInsured)
	rebate := base * rebateRate

	b := p.price(riskPercent, base, ncbPercent, otherDiscount, rebate)
	b.RebatePercent = round2(rebateRate * 100)
	b.RebateAmount = round2(rebate)
	return b
}

func (p PremiumProfile) price(riskPercent, basePremium, ncbPercent, otherDiscount, rebate float64) PremiumBreakdown {
	// 1) risk loading
	loadingPct := RiskLoadingPercent(riskPercent)
	loadingAmount := basePremium * loadingPct

	// 2) discounts
	ncbDiscount := basePremium * (ncbPercent / 100.0)
	totalDiscount := ncbDiscount + otherDiscount + rebate

	// 3) net premium, never negative
	netPremium := max(basePremium+loadingAmount-totalDiscount, 0.0)

	// 4) fees
	adminFee := netPremium * p.AdminFeeRate
	premiumBeforeVAT := netPremium + adminFee + p.PolicyFee

	// 5) VAT
	vatAmount := premiumBeforeVAT * p.VATRate

	// 6) total payable
	totalPayable := premiumBeforeVAT + vatAmount

	return PremiumBreakdown{
		BasePremium: round2(basePremium),
		RiskPercent: round2(riskPercent),

		RiskLoadingPercent: round2(loadingPct * 100),
		RiskLoadingAmount:  round2(loadingAmount),

		NCBPercentage: round2(ncbPercent),
		NCBDiscount:   round2(ncbDiscount),

		OtherDiscount: round2(otherDiscount),
		TotalDiscount: round2(totalDiscount),

		NetPremiumBeforeFees: round2(netPremium),

		AdminFeeRatePercent: round2(p.AdminFeeRate * 100),
		AdminFee:            round2(adminFee),
		PolicyFee:           round2(p.PolicyFee),

		PremiumBeforeVAT: round2(premiumBeforeVAT),

		VATRatePercent: round2(p.VATRate * 100),
		VATAmount:      round2(vatAmount),

		TotalPayable: round2(totalPayable),
	}
}

// round2 rounds half away from zero to 2 decimal places. decimal
// avoids the float representation artifacts a naive multiply-and-
// truncate picks up on amounts like x.005.
func round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}
