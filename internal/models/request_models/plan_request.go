package request_models

// GeneratePlanRequest triggers a regeneration of the caller's plan.
// Feedback is optional prior-cycle feedback folded into the prompt.
type GeneratePlanRequest struct {
	Feedback string `json:"feedback"`
	// Strict requests hard distribution validation: an out-of-policy
	// plan is rejected instead of stored with a warning.
	Strict bool `json:"strict"`
}
