package typeahead

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTTPSearcher queries GET {BaseURL}/api/search?q=.
type HTTPSearcher struct {
	BaseURL string
	Client  *http.Client
}

func (s *HTTPSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := strings.TrimRight(s.BaseURL, "/") + "/api/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("typeahead: search returned %s", resp.Status)
	}
	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("typeahead: decode results: %w", err)
	}
	return results, nil
}
