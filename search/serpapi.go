package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const SerpAPIBaseURL = "https://serpapi.com"

var httpClient = &http.Client{Timeout: 30 * time.Second}

// serpResponse mirrors the parts of the SerpAPI JSON payload we flatten into text.
type serpResponse struct {
	Error     string `json:"error"`
	AnswerBox struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

// NewSerpClient returns a search client backed by the SerpAPI Google engine.
func NewSerpClient(apiKey string, baseURLs ...string) *Client {
	base := SerpAPIBaseURL
	if len(baseURLs) > 0 && baseURLs[0] != "" {
		base = baseURLs[0]
	}

	c := &Client{
		Provider: "serpapi",
		APIKey:   apiKey,
		BaseURL:  base,
	}
	c.SetRunFunc(serpSearch)
	return c
}

func serpSearch(ctx context.Context, client *Client, query string) (string, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", client.APIKey)

	reqURL := client.BaseURL + "/search.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("search provider error: %s", parsed.Error)
	}

	return flattenResults(parsed), nil
}

// flattenResults joins the answer box and organic result snippets into a single
// plain-text block, one result per line.
func flattenResults(resp serpResponse) string {
	var sb strings.Builder

	if resp.AnswerBox.Answer != "" {
		sb.WriteString(resp.AnswerBox.Answer)
		sb.WriteString("\n")
	}
	if resp.AnswerBox.Snippet != "" {
		sb.WriteString(resp.AnswerBox.Snippet)
		sb.WriteString("\n")
	}

	for _, result := range resp.OrganicResults {
		line := result.Title
		if result.Snippet != "" {
			if line != "" {
				line += " - "
			}
			line += result.Snippet
		}
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}
