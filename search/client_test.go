package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpClientFlattensResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, `"Acme" recent news`, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer_box": {"answer": "Acme Corp is a manufacturer."},
			"organic_results": [
				{"title": "Acme announces new product", "snippet": "The company launched...", "link": "https://example.com/1"},
				{"title": "Acme quarterly results", "snippet": "Revenue grew 10%.", "link": "https://example.com/2"}
			]
		}`))
	}))
	defer server.Close()

	client := NewSerpClient("test-key", server.URL)

	results, err := client.Run(context.Background(), `"Acme" recent news`)
	require.NoError(t, err)

	assert.Contains(t, results, "Acme Corp is a manufacturer.")
	assert.Contains(t, results, "Acme announces new product - The company launched...")
	assert.Contains(t, results, "Acme quarterly results - Revenue grew 10%.")
}

func TestSerpClientProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "Your searches for the month are exhausted."}`))
	}))
	defer server.Close()

	client := NewSerpClient("test-key", server.URL)

	_, err := client.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searches for the month are exhausted")
}

func TestSerpClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewSerpClient("bad-key", server.URL)

	_, err := client.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDummyClient(t *testing.T) {
	client := NewDummyClient(func(ctx context.Context, query string) (string, error) {
		if query == "fail" {
			return "", errors.New("simulated failure")
		}
		return "results for " + query, nil
	})

	results, err := client.Run(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "results for acme", results)

	_, err = client.Run(context.Background(), "fail")
	assert.Error(t, err)
}
