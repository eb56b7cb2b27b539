package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/internal/config"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return newOpenAIProvider(cfg, "", DefaultSampling)
}

func TestOpenAIGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Paris"}}]}`))
	})

	out, err := p.Generate(context.Background(), "where?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", out)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "where?", got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[0].Role)
	assert.Equal(t, 4096, got.MaxTokens)
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	out, err := p.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOpenAIGenerateUpstreamError(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := p.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate content")
}

func TestNewTextGeneratorUnknownProvider(t *testing.T) {
	_, _, err := NewTextGenerator(context.Background(), config.LLMConfig{Provider: "nope"})
	assert.Error(t, err)
}

func TestNewTextGeneratorOpenAI(t *testing.T) {
	gen, closeFn, err := NewTextGenerator(context.Background(), config.LLMConfig{Provider: config.LLMOpenAI, OpenAIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, gen)
	assert.NoError(t, closeFn())
}
