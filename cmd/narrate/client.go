package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hkbk-garden/plant-catalog/pkg/speech"
)

// plantDetail is the part of GET /api/plants/{id} the narrator needs.
type plantDetail struct {
	Plant struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Heading string `json:"heading"`
	} `json:"plant"`
	Utterance speech.Utterance `json:"utterance"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// catalogClient fetches detail views from a running catalog server.
type catalogClient struct {
	baseURL *url.URL
	http    *http.Client
}

func newCatalogClient(baseURL string, timeout time.Duration) (*catalogClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog url %q", baseURL)
	}
	return &catalogClient{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

// Detail fetches one plant. Server errors come back with the catalog's
// user-facing message.
func (c *catalogClient) Detail(ctx context.Context, id string) (*plantDetail, error) {
	endpoint := c.baseURL.JoinPath("api", "plants", id).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch plant %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Error)
		}
		return nil, fmt.Errorf("fetch plant %s: status %d", id, resp.StatusCode)
	}

	var detail plantDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("decode plant %s: %w", id, err)
	}
	return &detail, nil
}
