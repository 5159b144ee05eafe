package apimodels

type ParseRequest struct {
	// Description is the natural language problem statement
	Description string `json:"description"`

	// Text is accepted as an alias when Description is empty
	Text string `json:"text,omitempty"`
}

// Input returns the description, falling back to the text alias.
func (r ParseRequest) Input() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Text
}
