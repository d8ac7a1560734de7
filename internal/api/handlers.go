package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// DepletionRequest asks how long a net worth covers inflating expenses.
// Omitted rates use the default assumptions.
type DepletionRequest struct {
	NetWorth          decimal.Decimal  `json:"net_worth"`
	AnnualExpenses    decimal.Decimal  `json:"annual_expenses"`
	ExpectedReturnPct *decimal.Decimal `json:"expected_return_pct,omitempty"`
	InflationPct      *decimal.Decimal `json:"inflation_pct,omitempty"`
}

// DepletionResponse is the depletion model result
type DepletionResponse struct {
	Years  int    `json:"years"`
	Status string `json:"status"`
}

// AccumulationRequest asks how far a corpus is from the required corpus
type AccumulationRequest struct {
	NetWorth          decimal.Decimal  `json:"net_worth"`
	AnnualExpenses    decimal.Decimal  `json:"annual_expenses"`
	AnnualSavings     decimal.Decimal  `json:"annual_savings"`
	ExpectedReturnPct *decimal.Decimal `json:"expected_return_pct,omitempty"`
	InflationPct      *decimal.Decimal `json:"inflation_pct,omitempty"`
	SavingsGrowthPct  *decimal.Decimal `json:"savings_growth_pct,omitempty"`
}

// AccumulationResponse is the accumulation model result; YearsToFreedom is null when unreachable
type AccumulationResponse struct {
	RequiredCorpus decimal.Decimal `json:"required_corpus"`
	FFScorePct     decimal.Decimal `json:"ff_score_pct"`
	Status         string          `json:"status"`
	YearsToFreedom *int            `json:"years_to_freedom"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	state, err := s.decodeState(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	summary, err := s.engine.RecomputeState(state)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.metrics.Recomputes.Inc()
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDepletion(w http.ResponseWriter, r *http.Request) {
	var req DepletionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p := paramsWithDefaults(req.ExpectedReturnPct, req.InflationPct, nil)
	ret, inflation, _ := p.Rates()

	years := calculation.DepletionYears(req.NetWorth, req.AnnualExpenses, ret, inflation)
	writeJSON(w, http.StatusOK, DepletionResponse{
		Years:  years,
		Status: string(calculation.ClassifyDepletion(years)),
	})
}

func (s *Server) handleAccumulation(w http.ResponseWriter, r *http.Request) {
	var req AccumulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p := paramsWithDefaults(req.ExpectedReturnPct, req.InflationPct, req.SavingsGrowthPct)
	ret, inflation, growth := p.Rates()

	corpus := domain.NonNegative(req.NetWorth)
	required := calculation.RequiredCorpus(req.AnnualExpenses, ret, inflation)
	score := calculation.FFScore(corpus, required)

	resp := AccumulationResponse{
		RequiredCorpus: required.Round(2),
		FFScorePct:     score.Round(2),
		Status:         string(calculation.ClassifyAccumulation(score)),
	}
	if years, ok := calculation.YearsToFreedom(corpus, required, domain.NonNegative(req.AnnualSavings), ret, growth); ok {
		resp.YearsToFreedom = &years
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	var answers domain.RiskAnswers
	if err := decodeJSON(w, r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, calculation.ProfileRisk(answers))
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("no state is tracked by this server"))
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.State())
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	state, err := s.decodeState(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("no state is tracked by this server"))
		return
	}
	if err := s.tracker.Replace(r.Context(), state); err != nil {
		s.log.Errorf("failed to replace state: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.Recomputes.Inc()
	s.observe(s.tracker.Summary())
	writeJSON(w, http.StatusOK, s.tracker.State())
}

// decodeState reads an AppState body, validates it and normalizes it. Any summary sent is dropped.
func (s *Server) decodeState(w http.ResponseWriter, r *http.Request) (*domain.AppState, error) {
	state := domain.NewAppState()
	if err := decodeJSON(w, r, state); err != nil {
		return nil, err
	}
	if err := s.parser.ValidateState(state); err != nil {
		return nil, fmt.Errorf("state validation failed: %w", err)
	}
	state.Summary = nil
	state.Normalize()
	return state, nil
}

func (s *Server) observe(summary *domain.DerivedSummary) {
	if summary == nil {
		return
	}
	s.metrics.NetWorth.Set(summary.NetWorth.InexactFloat64())
	s.metrics.FFScore.Set(summary.FFScorePct.InexactFloat64())
}

func paramsWithDefaults(ret, inflation, growth *decimal.Decimal) calculation.Params {
	p := calculation.ParamsFromAssumptions(domain.DefaultAssumptions(), time.Time{})
	if ret != nil {
		p.ExpectedReturnPct = *ret
	}
	if inflation != nil {
		p.InflationPct = *inflation
	}
	if growth != nil {
		p.SavingsGrowthPct = *growth
	}
	return p
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
