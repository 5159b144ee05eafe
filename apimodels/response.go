package apimodels

import "encoding/json"

// ParseResponse is the success envelope of /api/parse-problem.
type ParseResponse struct {
	Success bool `json:"success"`

	// Problem category chosen by the model
	Type string `json:"type"`

	// Named numeric parameters. Keys are set by convention per category and
	// are not validated; a null value means the model could not infer it.
	Params map[string]*float64 `json:"params"`

	// Optional explanation from the model, empty when absent
	Reasoning string `json:"reasoning"`

	// Optional visual hints, passed through verbatim
	Visual json.RawMessage `json:"visual,omitempty"`

	// Model output as received, for diagnostics
	RawResponse string `json:"raw_response"`
}

// ErrorResponse is the failure envelope. RawResponse is only set when the
// model output could not be parsed.
type ErrorResponse struct {
	Success     bool    `json:"success"`
	Error       string  `json:"error"`
	RawResponse *string `json:"raw_response,omitempty"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}
