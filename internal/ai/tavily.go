package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TavilyConfig holds API settings for the Tavily web-search service.
type TavilyConfig struct {
	BaseURL    string
	APIKey     string
	MaxResults int
}

type TavilyClient struct {
	cfg        TavilyConfig
	httpClient *http.Client
}

func NewTavilyClient(cfg TavilyConfig) *TavilyClient {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 2
	}
	return &TavilyClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs a web search and returns the top results' snippet texts
// concatenated into one string.
func (c *TavilyClient) Search(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("search query is empty")
	}

	reqBody := map[string]interface{}{
		"api_key":     c.cfg.APIKey,
		"query":       query,
		"max_results": c.cfg.MaxResults,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal search request failed: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("build search request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read search response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("search response status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Results []struct {
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse search json failed: %w", err)
	}

	var content strings.Builder
	for _, r := range parsed.Results {
		content.WriteString(r.Content)
	}
	return content.String(), nil
}
