package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"
)

const (
	autocompleteBaseURL = "https://autocomplete.travelpayouts.com/places2"

	// fuzzy-match distance threshold: records further than this from the
	// query across all matched fields are dropped
	fuzzyThreshold = 0.4
)

// AirportClient resolves free-text city names into airport candidates via
// the travelpayouts autocomplete API.
type AirportClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func newAirportClient(token string, log *zap.Logger) *AirportClient {
	return &AirportClient{
		baseURL: autocompleteBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// place is one autocomplete record as returned by the API.
type place struct {
	Type            string `json:"type"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	CityName        string `json:"city_name"`
	MainAirportName string `json:"main_airport_name"`
}

// Resolve returns airport candidates for a city name, possibly none. Kept
// records are airports, or cities with a main airport, fuzzy-matched
// against the query.
func (c *AirportClient) Resolve(ctx context.Context, city string) ([]Airport, error) {
	c.log.Debug("resolving airports", zap.String("city", city))

	if c.token == "" {
		return nil, fmt.Errorf("aviasales api token is not configured")
	}

	params := url.Values{}
	params.Set("term", city)
	params.Set("locale", "ru")
	params.Set("types", "city,airport")
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build autocomplete request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete request: unexpected status %s", resp.Status)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	var airports []Airport
	for _, p := range places {
		if !matchesQuery(p, city) {
			continue
		}
		if p.Code == "" {
			continue
		}

		switch {
		case p.Type == "airport":
			airports = append(airports, Airport{Code: p.Code, Name: p.Name})
		case p.Type == "city" && p.MainAirportName != "":
			airports = append(airports, Airport{Code: p.Code, Name: p.MainAirportName})
		}
	}

	c.log.Info("airports resolved", zap.String("city", city), zap.Int("count", len(airports)))
	return airports, nil
}

// matchesQuery checks the record's name fields against the query the way
// the autocomplete results are meant to be filtered: a substring hit
// counts as exact, otherwise normalized edit distance must stay within
// fuzzyThreshold.
func matchesQuery(p place, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}

	lev := metrics.NewLevenshtein()
	for _, field := range []string{p.Name, p.CityName, p.MainAirportName} {
		if field == "" {
			continue
		}
		f := strings.ToLower(field)
		if strings.Contains(f, q) {
			return true
		}
		if 1-strutil.Similarity(f, q, lev) <= fuzzyThreshold {
			return true
		}
	}
	return false
}
