package parser_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/config"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/parser"
)

// TestEmbeddingClient_EmbedStrings 用 httptest 模拟 OpenAI 兼容的 embedding 接口
func TestEmbeddingClient_EmbedStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "all-MiniLM-L6-v2", reqBody["model"])

		resp := map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "embedding": []float64{0.1, 0.2, 0.3}, "index": 0},
				{"object": "embedding", "embedding": []float64{0.4, 0.5, 0.6}, "index": 1},
			},
			"model": "all-MiniLM-L6-v2",
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client, err := parser.NewEmbeddingClient(config.EmbeddingConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		Dimensions: 3,
	}, 5*time.Second)
	require.NoError(t, err)

	vectors, err := client.EmbedStrings(context.Background(), []string{"resume text", "job text"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vectors[0])
	assert.Equal(t, []float64{0.4, 0.5, 0.6}, vectors[1])
	assert.Equal(t, 3, client.GetDimensions())
}

func TestEmbeddingClient_EmbedStrings_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"model overloaded","type":"server_error"}`))
	}))
	defer server.Close()

	client, err := parser.NewEmbeddingClient(config.EmbeddingConfig{BaseURL: server.URL}, 5*time.Second)
	require.NoError(t, err)

	_, err = client.EmbedStrings(context.Background(), []string{"text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestEmbeddingClient_EmbedStrings_EmptyInput(t *testing.T) {
	client, err := parser.NewEmbeddingClient(config.EmbeddingConfig{BaseURL: "http://localhost:1"}, time.Second)
	require.NoError(t, err)

	vectors, err := client.EmbedStrings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestNewEmbeddingClient_RequiresBaseURL(t *testing.T) {
	_, err := parser.NewEmbeddingClient(config.EmbeddingConfig{}, time.Second)
	assert.Error(t, err)
}
