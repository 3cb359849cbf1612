package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ollamaServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func openAIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGenerator(t *testing.T, clientType, baseURL string, timeout time.Duration) Generator {
	t.Helper()
	g, err := NewGenerator(Options{
		ClientType:  clientType,
		BaseURL:     baseURL,
		Model:       "yi",
		APIKey:      "test-key",
		Temperature: 0.3,
		Timeout:     timeout,
	}, zap.NewNop())
	require.NoError(t, err)
	return g
}

func slowHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(2 * time.Second):
	}
}

func TestNewGenerator_UnknownType(t *testing.T) {
	_, err := NewGenerator(Options{ClientType: "gpt-on-a-toaster"}, zap.NewNop())
	assert.Error(t, err)
}

func TestOllamaGenerator(t *testing.T) {
	t.Run("returns message content", func(t *testing.T) {
		var got map[string]any
		srv := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"model":"yi","message":{"role":"assistant","content":"問題：A？\n選項一：B\n選項二：C"},"done":true}` + "\n"))
		})
		g := newTestGenerator(t, "ollama", srv.URL+"/v1", time.Second)

		out, err := g.Generate(context.Background(), "prompt text")
		require.NoError(t, err)
		assert.Equal(t, "問題：A？\n選項一：B\n選項二：C", out)
		assert.Equal(t, "yi", got["model"])
		assert.Equal(t, false, got["stream"])
	})

	t.Run("server error is unavailability", func(t *testing.T) {
		srv := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
		})
		g := newTestGenerator(t, "ollama", srv.URL, time.Second)

		_, err := g.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrGeneratorUnavailable)
	})

	t.Run("per-call timeout", func(t *testing.T) {
		srv := ollamaServer(t, slowHandler)
		g := newTestGenerator(t, "ollama", srv.URL, 50*time.Millisecond)

		_, err := g.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrGenerationTimeout)
		assert.False(t, errors.Is(err, ErrGeneratorUnavailable))
	})

	t.Run("caller cancellation is returned as is", func(t *testing.T) {
		srv := ollamaServer(t, slowHandler)
		g := newTestGenerator(t, "ollama", srv.URL, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := g.Generate(ctx, "prompt")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.Is(err, ErrGenerationTimeout))
	})
}

func TestOpenAIGenerator(t *testing.T) {
	t.Run("returns first choice", func(t *testing.T) {
		srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"model": "yi",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": "推薦你去散步。"}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`))
		})
		g := newTestGenerator(t, "openai", srv.URL, time.Second)

		out, err := g.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "推薦你去散步。", out)
	})

	t.Run("api error is unavailability", func(t *testing.T) {
		srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		})
		g := newTestGenerator(t, "openai", srv.URL, time.Second)

		_, err := g.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrGeneratorUnavailable)
	})

	t.Run("per-call timeout", func(t *testing.T) {
		srv := openAIServer(t, slowHandler)
		g := newTestGenerator(t, "openai", srv.URL, 50*time.Millisecond)

		_, err := g.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrGenerationTimeout)
	})
}

func TestTokenCounter_NilIsZero(t *testing.T) {
	var tc *tokenCounter
	assert.Equal(t, 0, tc.Count("anything"))
}
