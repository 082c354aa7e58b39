package handler

import "eligibility/internal/decision"

// EligibilityResponse is the HTTP response for GET /api/v1/eligibility.
type EligibilityResponse struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// FromOutcome converts a domain Outcome to an HTTP response. Reasons is
// always an array, empty when eligible.
func FromOutcome(outcome *decision.Outcome) *EligibilityResponse {
	reasons := make([]string, 0, len(outcome.Reasons))
	for _, r := range outcome.Reasons {
		reasons = append(reasons, string(r))
	}
	return &EligibilityResponse{
		Eligible: outcome.Eligible,
		Reasons:  reasons,
	}
}
