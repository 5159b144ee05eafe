package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/physlab/problem-relay/internal/llm"
	"github.com/physlab/problem-relay/internal/llm/mocks"
	"github.com/physlab/problem-relay/internal/prompt"
)

func TestService_Parse(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.Request) (*llm.Response, error) {
			require.Len(t, req.Messages, 2)
			assert.Equal(t, prompt.SystemPrompt, req.Messages[0].Content)
			assert.Equal(t, "请解析这个物理题目：\n\n自由落体运动，5秒后的速度和位移", req.Messages[1].Content)
			assert.True(t, req.JSONOutput)
			assert.Equal(t, llm.DefaultTemperature, req.Temperature)
			assert.Equal(t, int64(llm.DefaultMaxTokens), req.MaxTokens)
			return &llm.Response{Content: `{"type":"uniform","params":{"v0":0,"a":10,"time":5}}`}, nil
		})

	svc := New(completer, true)
	resp, err := svc.Parse(context.Background(), "  自由落体运动，5秒后的速度和位移  ")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "uniform", resp.Type)
	assert.Equal(t, 10.0, *resp.Params["a"])
	assert.Equal(t, "", resp.Reasoning)
}

func TestService_EmptyDescriptionNeverCallsCompleter(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	svc := New(completer, true)
	_, err := svc.Parse(context.Background(), " \t\n ")

	var validation *ValidationError
	require.True(t, errors.As(err, &validation), "expected ValidationError, got %T", err)
	assert.ErrorIs(t, err, prompt.ErrEmptyDescription)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestService_MissingKeyNeverCallsCompleter(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	svc := New(completer, false)
	_, err := svc.Parse(context.Background(), "半径为2米的圆周运动")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %T", err)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestService_CompleterErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantCfg bool
	}{
		{name: "missing key from client", err: fmt.Errorf("wrapped: %w", llm.ErrMissingAPIKey), wantCfg: true},
		{name: "upstream status", err: &llm.UpstreamError{StatusCode: 503, Err: errors.New("unavailable")}},
		{name: "timeout", err: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mocks.NewMockCompleter(ctrl)
			completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, tt.err).Times(1)

			_, err := New(completer, true).Parse(context.Background(), "碰撞")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var cfgErr *ConfigurationError
			var callErr *UpstreamCallError
			if tt.wantCfg {
				assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &callErr), "expected UpstreamCallError, got %T", err)
			}
			_, hasRaw := RawResponse(err)
			assert.False(t, hasRaw)
		})
	}
}

func TestService_UnparsableReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(&llm.Response{Content: "not json"}, nil)

	_, err := New(completer, true).Parse(context.Background(), "平抛运动")
	require.Error(t, err)

	raw, ok := RawResponse(err)
	require.True(t, ok)
	assert.Equal(t, "not json", raw)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestService_NilCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := New(completer, true).Parse(context.Background(), "天体运动")
	assert.ErrorIs(t, err, llm.ErrNoChoices)
}

func TestService_UnknownCategoryPassesThroughWithWarning(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return(&llm.Response{Content: `{"type":"thermodynamics","params":{"T":300}}`}, nil)

	resp, err := New(completer, true).Parse(context.Background(), "理想气体等温膨胀")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "thermodynamics", resp.Type)
	assert.Contains(t, logs.String(), "category outside the supported set")
	assert.Contains(t, logs.String(), "type=thermodynamics")
}
