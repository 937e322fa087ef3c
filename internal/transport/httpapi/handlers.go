package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/finance"
	"github.com/sandevgo/finadvisor/internal/providers/market"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/pkg/log"
	"github.com/shopspring/decimal"
)

type lumpSumRequest struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Years             int             `json:"years"`
	PeriodsPerYear    int             `json:"periods_per_year"`
}

type emiRequest struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Months            int             `json:"months"`
	Schedule          bool            `json:"schedule"`
}

type riskRequest struct {
	Answers risk.Response `json:"answers"`
}

type riskResponse struct {
	Score          int               `json:"score"`
	Profile        risk.Profile      `json:"profile"`
	Allocation     []risk.Allocation `json:"allocation"`
	ExpectedReturn string            `json:"expected_return"`
	Recommendation string            `json:"recommendation"`
}

type budgetRequest struct {
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
}

type projectionResponse struct {
	*finance.ProjectionResult
	ReturnPercent decimal.Decimal `json:"return_percent"`
}

func (s *Server) projectSIP(w http.ResponseWriter, r *http.Request) {
	var req finance.ProjectionRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := finance.ProjectSIP(req.WithDefaults())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectionResponse{res, finance.ReturnPercent(res)})
}

func (s *Server) projectLumpSum(w http.ResponseWriter, r *http.Request) {
	var req lumpSumRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PeriodsPerYear == 0 {
		req.PeriodsPerYear = 1
	}
	res, err := finance.ProjectLumpSum(req.Principal, req.AnnualRatePercent, req.Years, req.PeriodsPerYear)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectionResponse{res, finance.ReturnPercent(res)})
}

func (s *Server) loanEMI(w http.ResponseWriter, r *http.Request) {
	var req emiRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := finance.Amortize(req.Principal, req.AnnualRatePercent, req.Months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !req.Schedule {
		res.Schedule = nil
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) classifyRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if !decode(w, r, &req) {
		return
	}
	score, err := risk.Score(req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := risk.ProfileForScore(score)
	writeJSON(w, http.StatusOK, riskResponse{
		Score:          score,
		Profile:        p,
		Allocation:     p.Allocation(),
		ExpectedReturn: p.ExpectedReturn().String(),
		Recommendation: p.Recommendation(),
	})
}

func (s *Server) riskQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, risk.Questions)
}

func (s *Server) planBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decode(w, r, &req) {
		return
	}
	plan, err := finance.PlanBudget(req.MonthlyIncome)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) advise(w http.ResponseWriter, r *http.Request) {
	var q advisor.Query
	if !decode(w, r, &q) {
		return
	}
	resp, err := s.advisor.Advise(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	if s.quotes == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "market data disabled"})
		return
	}
	symbol := mux.Vars(r)["symbol"]
	q, err := s.quotes.Lookup(r.Context(), symbol, r.URL.Query().Get("period"))
	if err != nil {
		if errors.Is(err, market.ErrSymbolNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors to status codes. Anything that is not an
// invalid input is logged and reported as a 502 from an upstream.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *core.InvalidInputError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Error(), Field: invalid.Field})
		return
	}
	log.FromCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusBadGateway, errorBody{Error: "upstream failure"})
}
