// Package api - API types for the pricing endpoints
// Responses reuse the engine's result types so field names match across
// the CLI and HTTP surfaces.
package api

import (
	"github.com/shopspring/decimal"

	"bandwidth-cost/core/types"
)

// CalculateRequest is the input to POST /calculate
type CalculateRequest struct {
	// UsageGB is this period's usage
	UsageGB *decimal.Decimal `json:"usage_gb"`

	// Plan is the plan name
	Plan string `json:"plan"`

	// LastMonthUsageGB drives the loyalty discount (optional)
	LastMonthUsageGB decimal.Decimal `json:"last_month_usage_gb"`
}

// RecommendRequest is the input to POST /recommend
type RecommendRequest struct {
	// UsageGB is the projected usage
	UsageGB *decimal.Decimal `json:"usage_gb"`

	// LastMonthUsageGB drives the loyalty discount (optional)
	LastMonthUsageGB decimal.Decimal `json:"last_month_usage_gb"`
}

// PlansResponse is the output of GET /plans
type PlansResponse struct {
	Plans []types.Plan `json:"plans"`
	Count int          `json:"count"`
}

// ErrorResponse wraps every error body
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
