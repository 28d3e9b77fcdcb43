package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavirubc/rca-assist/internal/config"
)

func TestOptionsFrom_Defaults(t *testing.T) {
	opts := optionsFrom(&config.LLMConfig{Model: "m"})
	assert.Equal(t, "m", opts.Model)
	assert.Equal(t, 1024, opts.MaxTokens)
	assert.Equal(t, float32(0.3), opts.Temperature)
}

func TestOptionsFrom_ExplicitZeroTemperature(t *testing.T) {
	zero := float32(0)
	opts := optionsFrom(&config.LLMConfig{Model: "m", Temperature: &zero})
	assert.Zero(t, opts.Temperature)
}

func TestOpenAIProvider_ZeroTemperatureIsSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Contains(t, req, "temperature")
		assert.InDelta(t, 0, req["temperature"], 1e-6)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, Options{Model: "m", MaxTokens: 64})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hi")
	require.NoError(t, err)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.LLMConfig{Provider: "ollama"})
	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), &config.LLMConfig{Provider: "openai"})
	assert.Error(t, err)
	_, err = New(context.Background(), &config.LLMConfig{Provider: "anthropic"})
	assert.Error(t, err)
}

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float32 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 1024, req.MaxTokens)
		assert.InDelta(t, 0.3, req.Temperature, 1e-6)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "why did it break?", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Likely a race."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, optionsFrom(&config.LLMConfig{}))
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "why did it break?")
	require.NoError(t, err)
	assert.Equal(t, "Likely a race.", out)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, optionsFrom(&config.LLMConfig{}))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hi")
	assert.ErrorContains(t, err, "no completion choices")
}

func TestAnthropicProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-test", req["model"])
		assert.EqualValues(t, 512, req["max_tokens"])
		assert.Nil(t, req["system"])
		assert.Len(t, req["messages"], 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "Root cause: "}, {"type": "text", "text": "stale cache."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	p, err := NewAnthropicProvider("test-key", srv.URL, Options{Model: "claude-test", MaxTokens: 512, Temperature: 0.3})
	require.NoError(t, err)

	out, err := p.Complete(context.Background(), "why?")
	require.NoError(t, err)
	assert.Equal(t, "Root cause: stale cache.", out)
}
