package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ceylonsure/motor-risk/internal/core"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeEvaluator struct {
	assessment core.RiskAssessment
	err        error
	calls      int
	lastPolicy core.PolicyRecord
}

func (f *fakeEvaluator) Evaluate(_ context.Context, policy core.PolicyRecord) (core.RiskAssessment, error) {
	f.calls++
	f.lastPolicy = policy
	return f.assessment, f.err
}

type fakeRenewal struct {
	result core.RenewalResult
	err    error
	calls  int
}

func (f *fakeRenewal) Evaluate(_ context.Context, _ core.PolicyRecord, _, _, _ float64) (core.RenewalResult, error) {
	f.calls++
	return f.result, f.err
}

type stubAssessments struct {
	byID map[string]core.RiskAssessment
}

func (s *stubAssessments) Create(_ context.Context, a core.RiskAssessment) error {
	s.byID[a.ID] = a
	return nil
}

func (s *stubAssessments) Get(_ context.Context, id string) (core.RiskAssessment, error) {
	a, ok := s.byID[id]
	if !ok {
		return core.RiskAssessment{}, core.ErrNotFound
	}
	return a, nil
}

func mount(m Mountable) *chi.Mux {
	r := chi.NewRouter()
	m.Mount(r)
	return r
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const validPolicyBody = `{
	"driver_age": 30,
	"vehicle_age_years": 5,
	"vehicle_type": "Car",
	"fuel_type": "Petrol",
	"ncb_percentage": 20,
	"customer_id": "CUST100"
}`

func TestEvaluationCreate(t *testing.T) {
	svc := &fakeEvaluator{assessment: core.RiskAssessment{
		ID:              "A1",
		RiskProbability: 0.10,
		RiskLabel:       core.RiskLow,
		EBMProbability:  0.10,
		DriverAgeBand:   "25_34",
		VehicleAgeBand:  "4_7",
	}}
	r := mount(NewEvaluationHandler(svc, nil, testLog))

	rec := postJSON(t, r, "/evaluations", validPolicyBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("service called %d times, want 1", svc.calls)
	}

	var got core.RiskAssessment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.RiskLabel != core.RiskLow || got.RiskProbability != 0.10 {
		t.Errorf("response = %+v", got)
	}
	if got.NGBoostProbability != nil {
		t.Error("secondary probability present without escalation")
	}

	// absent optionals stay off the record so deriver defaults apply
	if _, ok := svc.lastPolicy[core.FieldParkingType]; ok {
		t.Error("absent optional field reached the policy record")
	}
	if ncb, _ := svc.lastPolicy.Number(core.FieldNCBPercent); ncb != 20 {
		t.Errorf("ncb on record = %v, want 20", ncb)
	}
}

func TestEvaluationCreateValidation(t *testing.T) {
	svc := &fakeEvaluator{}
	r := mount(NewEvaluationHandler(svc, nil, testLog))

	cases := []struct {
		name string
		body string
	}{
		{"missing driver_age", `{"vehicle_age_years": 5}`},
		{"underage driver", `{"driver_age": 17, "vehicle_age_years": 5}`},
		{"bad ncb step", `{"driver_age": 30, "vehicle_age_years": 5, "ncb_percentage": 15}`},
		{"unknown field", `{"driver_age": 30, "vehicle_age_years": 5, "horoscope": "leo"}`},
		{"bad nic", `{"driver_age": 30, "vehicle_age_years": 5, "nic": "12345"}`},
		{"malformed json", `{"driver_age": `},
	}
	for _, tc := range cases {
		rec := postJSON(t, r, "/evaluations", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
	if svc.calls != 0 {
		t.Errorf("service called %d times on invalid input, want 0", svc.calls)
	}
}

func TestEvaluationCreateBlacklisted(t *testing.T) {
	svc := &fakeEvaluator{err: fmt.Errorf("%w: blk001", core.ErrBlacklisted)}
	r := mount(NewEvaluationHandler(svc, nil, testLog))

	rec := postJSON(t, r, "/evaluations", validPolicyBody)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var p struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Detail != "Customer cannot be insured." {
		t.Errorf("detail = %q", p.Detail)
	}
}

func TestEvaluationCreateModelErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: driver_age_band", core.ErrMissingModelFeature), http.StatusInternalServerError},
		{fmt.Errorf("%w: primary: boom", core.ErrModelInference), http.StatusBadGateway},
		{fmt.Errorf("%w: driver_age", core.ErrMissingField), http.StatusBadRequest},
	}
	for _, tc := range cases {
		r := mount(NewEvaluationHandler(&fakeEvaluator{err: tc.err}, nil, testLog))
		rec := postJSON(t, r, "/evaluations", validPolicyBody)
		if rec.Code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestEvaluationGet(t *testing.T) {
	repo := &stubAssessments{byID: map[string]core.RiskAssessment{
		"A1": {ID: "A1", RiskLabel: core.RiskMedium, RiskProbability: 0.17},
	}}
	r := mount(NewEvaluationHandler(&fakeEvaluator{}, repo, testLog))

	req := httptest.NewRequest(http.MethodGet, "/evaluations/A1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got core.RiskAssessment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "A1" || got.RiskLabel != core.RiskMedium {
		t.Errorf("got %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/evaluations/missing", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id: status = %d, want 404", rec.Code)
	}
}

func TestEvaluationGetWithoutAuditTrail(t *testing.T) {
	r := mount(NewEvaluationHandler(&fakeEvaluator{}, nil, testLog))

	req := httptest.NewRequest(http.MethodGet, "/evaluations/A1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when persistence is off", rec.Code)
	}
}

func TestPremiumQuote(t *testing.T) {
	r := mount(NewPremiumHandler(core.DefaultPremiumProfile(), &fakeRenewal{}, testLog))

	rec := postJSON(t, r, "/premiums/quote",
		`{"risk_percent": 10, "base_premium": 45000, "ncb_percentage": 0, "other_discount": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var b core.PremiumBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.RiskLoadingAmount != 0 {
		t.Errorf("RiskLoadingAmount = %v, want 0 below the first band", b.RiskLoadingAmount)
	}
	if b.AdminFee != 1309.5 {
		t.Errorf("AdminFee = %v, want 1309.5", b.AdminFee)
	}
	if b.TotalPayable != 54881.21 {
		t.Errorf("TotalPayable = %v, want 54881.21", b.TotalPayable)
	}
}

func TestPremiumQuoteRejectsNonPositiveBase(t *testing.T) {
	r := mount(NewPremiumHandler(core.DefaultPremiumProfile(), &fakeRenewal{}, testLog))

	for _, body := range []string{
		`{"risk_percent": 10, "base_premium": 0}`,
		`{"risk_percent": 10, "base_premium": -45000}`,
		`{"risk_percent": 120, "base_premium": 45000}`,
	} {
		rec := postJSON(t, r, "/premiums/quote", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPremiumRenewal(t *testing.T) {
	renewal := &fakeRenewal{result: core.RenewalResult{
		ExpectedClaimAmount: 750000,
		RiskScore:           50,
	}}
	r := mount(NewPremiumHandler(core.DefaultPremiumProfile(), renewal, testLog))

	rec := postJSON(t, r, "/premiums/renewal",
		`{"policy": `+validPolicyBody+`, "sum_insured": 5000000, "ncb_percentage": 0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if renewal.calls != 1 {
		t.Errorf("renewal service called %d times, want 1", renewal.calls)
	}

	var got core.RenewalResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RiskScore != 50 {
		t.Errorf("RiskScore = %v, want 50", got.RiskScore)
	}

	// sum insured is mandatory and positive
	rec = postJSON(t, r, "/premiums/renewal", `{"policy": `+validPolicyBody+`}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing sum_insured: status = %d, want 400", rec.Code)
	}
}

func TestQuotationCreate(t *testing.T) {
	svc := &fakeEvaluator{assessment: core.RiskAssessment{
		ID:              "A1",
		RiskProbability: 0.10,
		RiskLabel:       core.RiskLow,
	}}
	r := mount(NewQuotationHandler(svc, core.DefaultPremiumProfile(), testLog))

	rec := postJSON(t, r, "/quotations",
		`{"policy": `+validPolicyBody+`, "base_premium": 45000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Assessment core.RiskAssessment   `json:"assessment"`
		Premium    core.PremiumBreakdown `json:"premium"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Assessment.RiskLabel != core.RiskLow {
		t.Errorf("assessment = %+v", got.Assessment)
	}
	// risk percent is the assessment probability x100; NCB comes off the
	// policy record
	if got.Premium.RiskPercent != 10 {
		t.Errorf("RiskPercent = %v, want 10", got.Premium.RiskPercent)
	}
	if got.Premium.NCBDiscount != 9000 {
		t.Errorf("NCBDiscount = %v, want 20%% of 45000", got.Premium.NCBDiscount)
	}
}

func TestQuotationCreateEvaluationFailureIsAtomic(t *testing.T) {
	svc := &fakeEvaluator{err: fmt.Errorf("%w: secondary: down", core.ErrModelInference)}
	r := mount(NewQuotationHandler(svc, core.DefaultPremiumProfile(), testLog))

	rec := postJSON(t, r, "/quotations",
		`{"policy": `+validPolicyBody+`, "base_premium": 45000}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("total_payable")) {
		t.Error("premium leaked on a failed evaluation")
	}
}
