package relay

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/physlab/problem-relay/apimodels"
	"github.com/physlab/problem-relay/internal/llm"
	"github.com/physlab/problem-relay/internal/prompt"
)

// Service runs one problem description through prompt building, the
// completion call and translation. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	completer        llm.Completer
	apiKeyConfigured bool
}

func New(completer llm.Completer, apiKeyConfigured bool) *Service {
	return &Service{
		completer:        completer,
		apiKeyConfigured: apiKeyConfigured,
	}
}

func (s *Service) APIKeyConfigured() bool {
	return s.apiKeyConfigured
}

// Parse returns a success envelope or one of ValidationError,
// ConfigurationError, UpstreamParseError and UpstreamCallError.
func (s *Service) Parse(ctx context.Context, description string) (*apimodels.ParseResponse, error) {
	p, err := prompt.Build(description)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	if !s.apiKeyConfigured {
		return nil, &ConfigurationError{Err: llm.ErrMissingAPIKey}
	}

	slog.Info("Dispatching problem to completion endpoint", "description_chars", utf8.RuneCountInString(p.Description))
	start := time.Now()

	completion, err := s.completer.Complete(ctx, llm.NewRequest(p.Messages(), llm.WithJSONOutput()))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, &ConfigurationError{Err: err}
		}
		return nil, &UpstreamCallError{Err: err}
	}
	if completion == nil {
		return nil, &UpstreamCallError{Err: llm.ErrNoChoices}
	}

	resp, err := Translate(completion.Content)
	if err != nil {
		slog.Warn("Model reply could not be parsed", "error", err, "raw", completion.Content)
		return nil, err
	}

	if !prompt.Category(resp.Type).Known() {
		slog.Warn("Model returned a category outside the supported set", "type", resp.Type, "supported", prompt.Categories())
	}

	slog.Info("Problem parsed",
		"type", resp.Type,
		"params", len(resp.Params),
		"duration", time.Since(start),
	)
	return resp, nil
}
