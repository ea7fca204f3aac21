package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxfs/boxfs/internal/config"
)

func testConfig(baseURL string) config.AIConfig {
	return config.AIConfig{
		BaseURL:     baseURL,
		Model:       "test-model",
		APIKey:      "test-key",
		MaxTokens:   100,
		Temperature: 0.5,
	}
}

func TestCompleteSuccess(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "test-model",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "pong"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	completion, err := client.Complete(context.Background(), "ping", Options{})
	require.NoError(t, err)
	assert.Equal(t, "pong", completion.Message)
	assert.Equal(t, "test-model", completion.Model)

	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "ping", captured.Messages[0].Content)
	assert.Equal(t, 100, captured.MaxTokens)
	assert.Equal(t, 0.5, captured.Temperature)
}

func TestCompleteOverrides(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	temp := 0.0
	completion, err := client.Complete(context.Background(), "hi", Options{
		Model:       "other-model",
		MaxTokens:   42,
		Temperature: &temp,
	})
	require.NoError(t, err)
	assert.Equal(t, "other-model", completion.Model)
	assert.Equal(t, "other-model", captured.Model)
	assert.Equal(t, 42, captured.MaxTokens)
	assert.Equal(t, 0.0, captured.Temperature)
}

func TestCompleteEmptyPrompt(t *testing.T) {
	client := NewClient(testConfig("http://localhost:1"))

	for _, prompt := range []string{"", "   \n\t"} {
		_, err := client.Complete(context.Background(), prompt, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "prompt cannot be empty")
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model not loaded"},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Complete(context.Background(), "hi", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Complete(context.Background(), "hi", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "answer"}},
			},
		})
	}))
	defer server.Close()

	p := NewProvider(NewClient(testConfig(server.URL)))

	result, err := p.Execute(context.Background(), "ai.complete", map[string]interface{}{
		"prompt": "question",
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "answer", result.Data["message"])
}

func TestProviderEmptyPrompt(t *testing.T) {
	p := NewProvider(NewClient(testConfig("http://localhost:1")))

	result, err := p.Execute(context.Background(), "ai.complete", map[string]interface{}{})
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "prompt cannot be empty")
}
