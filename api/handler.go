package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
	"bandwidth-cost/internal/logging"
)

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.UsageGB == nil {
		s.writeUsageRequired(w, r)
		return
	}

	plan := types.PlanName(req.Plan)
	result, err := s.engine.Calculate(*req.UsageGB, plan, req.LastMonthUsageGB)
	if err != nil {
		s.metrics.CalculationsTotal.WithLabelValues(s.planLabel(plan), string(errors.TypeOf(err))).Inc()
		s.writeEngineError(w, r, err)
		return
	}

	s.metrics.CalculationsTotal.WithLabelValues(plan.String(), "ok").Inc()
	s.writeJSON(w, result, http.StatusOK)
}

// handleRecommend handles POST /recommend
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.UsageGB == nil {
		s.writeUsageRequired(w, r)
		return
	}

	rec, err := s.engine.RecommendPlan(*req.UsageGB, req.LastMonthUsageGB)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.metrics.RecommendationsTotal.WithLabelValues(rec.RecommendedPlan.String()).Inc()
	s.writeJSON(w, rec, http.StatusOK)
}

// handlePlans handles GET /plans
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans := s.engine.Catalog().Plans()
	s.writeJSON(w, PlansResponse{Plans: plans, Count: len(plans)}, http.StatusOK)
}

// decode reads a size-capped JSON body into v, writing the error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		s.writeError(w, r, "REQUEST_TOO_LARGE", fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return false
	}
	s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
	return false
}

func (s *Server) writeUsageRequired(w http.ResponseWriter, r *http.Request) {
	err := errors.Input("usage_gb is required")
	s.writeError(w, r, string(err.Type), err.Message, http.StatusBadRequest)
}

// writeEngineError maps validation failures to 400 and anything else to 500
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch errType := errors.TypeOf(err); errType {
	case errors.TypeInvalidPlan, errors.TypeInvalidUsage:
		s.writeError(w, r, string(errType), err.Error(), http.StatusBadRequest)
	default:
		logging.Error("Pricing engine failed",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Error(err),
		)
		s.writeError(w, r, string(errors.TypeInternal), "internal error", http.StatusInternalServerError)
	}
}

// planLabel bounds metric cardinality to catalog plans
func (s *Server) planLabel(plan types.PlanName) string {
	if s.engine.Catalog().Has(plan) {
		return plan.String()
	}
	return "unknown"
}
