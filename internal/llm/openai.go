package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/physlab/problem-relay/internal/config"
)

// OpenAI talks to any OpenAI-compatible chat-completion endpoint; DeepSeek by default.
type OpenAI struct {
	client *openai.Client
	cfg    config.DeepSeekConfig
}

// NewOpenAI builds the client once. The request timeout and the transport
// retry count are fixed here and never changed per call.
func NewOpenAI(cfg config.DeepSeekConfig) *OpenAI {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL(cfg.Endpoint)),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(cfg.MaxRetries),
	)

	return &OpenAI{
		client: client,
		cfg:    cfg,
	}
}

func (o *OpenAI) Complete(ctx context.Context, req Request) (*Response, error) {
	if o.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.F(openai.ChatModel(o.cfg.Model)),
		Messages:    openai.F(toOpenAIMessages(req.Messages)),
		Temperature: openai.F(req.Temperature),
		MaxTokens:   openai.F(req.MaxTokens),
	}
	if req.JSONOutput {
		params.ResponseFormat = openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		)
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		slog.Error("Completion request failed", "model", o.cfg.Model, "duration", time.Since(start), "error", err)
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	slog.Debug("Completion request succeeded",
		"model", resp.Model,
		"duration", time.Since(start),
		"total_tokens", resp.Usage.TotalTokens,
	)

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			out = append(out, openai.SystemMessage(m.Content))
			continue
		}
		out = append(out, openai.UserMessage(m.Content))
	}
	return out
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.StatusCode, Err: err}
	}
	return &UpstreamError{Err: err}
}

// baseURL makes relative path resolution keep any path prefix such as /v1.
func baseURL(endpoint string) string {
	if strings.HasSuffix(endpoint, "/") {
		return endpoint
	}
	return endpoint + "/"
}
