// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package geocode resolves street locations to boroughs through the NYC
// Geoclient search API. Resolution is a last resort for records whose
// precinct and county fields are both unusable, so results are cached in
// the history store by the Resolver wrapper.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/openplates/platewatch/internal/normalize"
	"github.com/openplates/platewatch/pkg/types"
)

// geoclientBase is the NYC API Portal geoclient root. Declared as a var so
// tests can substitute an httptest server; config may also override it per
// client.
var geoclientBase = "https://api.nyc.gov/geoclient/v2/"

// geoclientBoroughs maps the API's borough spellings to the names used in
// aggregates.
var geoclientBoroughs = map[string]string{
	"MANHATTAN":     normalize.BoroughManhattan,
	"BRONX":         normalize.BoroughBronx,
	"THE BRONX":     normalize.BoroughBronx,
	"BROOKLYN":      normalize.BoroughBrooklyn,
	"QUEENS":        normalize.BoroughQueens,
	"STATEN ISLAND": normalize.BoroughStatenIsland,
}

// Client calls the geoclient search endpoint.
type Client struct {
	HTTP *http.Client
	cfg  types.GeocodeConfig
	base string
}

// NewClient builds a Client from config. An empty BaseURL uses the NYC
// API Portal host.
func NewClient(cfg types.GeocodeConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = geoclientBase
	}
	return &Client{HTTP: &http.Client{Timeout: cfg.Timeout}, cfg: cfg, base: base}
}

// searchResponse is the subset of the geoclient search payload we read.
type searchResponse struct {
	Results []struct {
		Response struct {
			FirstBoroughName string `json:"firstBoroughName"`
		} `json:"response"`
	} `json:"results"`
}

// Resolve looks up the borough containing a street, optionally refined by
// a cross street. Returns "" with no error when the API has no answer;
// callers treat that the same as an unresolvable record.
func (c *Client) Resolve(ctx context.Context, street, crossStreet string) (string, error) {
	input := street
	if crossStreet != "" {
		input += " and " + crossStreet
	}
	input += " new york ny"

	params := url.Values{}
	params.Set("input", input)
	endpoint := c.base + "search.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoclient search: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("geoclient search: decoding response: %w", err)
	}
	for _, result := range payload.Results {
		name := strings.ToUpper(strings.TrimSpace(result.Response.FirstBoroughName))
		if b, ok := geoclientBoroughs[name]; ok {
			return b, nil
		}
	}
	return "", nil
}
