package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicLLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	llm, err := NewAnthropicLLMFromConfig(&LLMSettings{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return llm
}

func testRequest() CompletionRequest {
	return CompletionRequest{
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Prompt:      BuildPrompt(sampleParams()),
		Credential:  "valid-key",
	}
}

func TestAnthropicLLM_Complete(t *testing.T) {
	var got anthropicRequest
	llm := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "valid-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"message","content":[{"type":"text","text":"hello"}]}`))
	})

	raw, err := llm.Complete(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello", Normalize(raw).Text)

	assert.Equal(t, DefaultModel, got.Model)
	assert.EqualValues(t, DefaultMaxTokens, got.MaxTokens)
	assert.Equal(t, DefaultTemperature, got.Temperature)
	assert.Equal(t, SystemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestAnthropicLLM_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthentication},
		{http.StatusTooManyRequests, KindOther},
		{http.StatusInternalServerError, KindOther},
	}
	for _, tt := range tests {
		llm := newAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"x","message":"nope"}}`))
		})
		_, err := llm.Complete(context.Background(), testRequest())
		genErr, ok := AsGenerationError(err)
		require.True(t, ok, tt.status)
		assert.Equal(t, tt.kind, genErr.Kind, tt.status)
		assert.Contains(t, genErr.Message, "nope")
	}
}

func TestAnthropicLLM_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	llm, err := NewAnthropicLLMFromConfig(&LLMSettings{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = llm.Complete(context.Background(), testRequest())
	genErr, ok := AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, genErr.Kind)
}
