package llm

import (
	"context"
)

//go:generate mockgen -source=types.go -destination=mocks/mock_completer.go -package=mocks

// Completer sends role-tagged messages to a chat-completion endpoint and
// returns the text of the first choice.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

// Sampling defaults for structured extraction.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 500
)

type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int64
	// JSONOutput asks the endpoint to constrain the reply to a JSON object.
	JSONOutput bool
}

type Option func(*Request)

func WithJSONOutput() Option {
	return func(r *Request) { r.JSONOutput = true }
}

// NewRequest builds a request with the default sampling parameters, then
// applies opts in order.
func NewRequest(messages []Message, opts ...Option) Request {
	req := Request{
		Messages:    messages,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
