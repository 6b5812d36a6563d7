package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAirportClient(t *testing.T, handler http.HandlerFunc) *AirportClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := newAirportClient("test-token", zap.NewNop())
	client.baseURL = server.URL
	return client
}

func placesHandler(t *testing.T, places []place) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ru", q.Get("locale"))
		assert.Equal(t, "city,airport", q.Get("types"))
		assert.Equal(t, "test-token", q.Get("token"))
		assert.NotEmpty(t, q.Get("term"))

		require.NoError(t, json.NewEncoder(w).Encode(places))
	}
}

func TestResolveFiltersAndMapsRecords(t *testing.T) {
	client := newTestAirportClient(t, placesHandler(t, []place{
		{Type: "airport", Code: "SVO", Name: "Sheremetyevo International", CityName: "Moscow"},
		{Type: "city", Code: "MOW", Name: "Moscow", MainAirportName: "Sheremetyevo"},
		{Type: "city", Code: "ZZZ", Name: "Moscow"},                             // city without a main airport
		{Type: "airport", Code: "", Name: "Moscow Heliport", CityName: "Moscow"}, // no code
		{Type: "airport", Code: "BER", Name: "Berlin Brandenburg", CityName: "Berlin"},
		{Type: "station", Code: "MOS", Name: "Moscow Central", CityName: "Moscow"},
	}))

	airports, err := client.Resolve(context.Background(), "Moscow")

	require.NoError(t, err)
	assert.Equal(t, []Airport{
		{Code: "SVO", Name: "Sheremetyevo International"},
		{Code: "MOW", Name: "Sheremetyevo"},
	}, airports)
}

func TestResolveToleratesTypos(t *testing.T) {
	client := newTestAirportClient(t, placesHandler(t, []place{
		{Type: "airport", Code: "SVO", Name: "Sheremetyevo", CityName: "Moscow"},
	}))

	airports, err := client.Resolve(context.Background(), "Moskow")

	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "SVO", airports[0].Code)
}

func TestResolveEmptyUpstreamResult(t *testing.T) {
	client := newTestAirportClient(t, placesHandler(t, []place{}))

	airports, err := client.Resolve(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.Empty(t, airports)
}

func TestResolveUpstreamFailure(t *testing.T) {
	client := newTestAirportClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	airports, err := client.Resolve(context.Background(), "Moscow")

	assert.Error(t, err)
	assert.Empty(t, airports)
}

func TestResolveMalformedUpstreamBody(t *testing.T) {
	client := newTestAirportClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Resolve(context.Background(), "Moscow")

	assert.Error(t, err)
}

func TestResolveWithoutToken(t *testing.T) {
	client := newAirportClient("", zap.NewNop())

	airports, err := client.Resolve(context.Background(), "Moscow")

	assert.Error(t, err)
	assert.Empty(t, airports)
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		name  string
		p     place
		query string
		want  bool
	}{
		{"exact city name", place{CityName: "Moscow"}, "Moscow", true},
		{"substring in airport name", place{Name: "Moscow Sheremetyevo"}, "moscow", true},
		{"one-letter typo", place{CityName: "Moscow"}, "Moskow", true},
		{"main airport field", place{MainAirportName: "Sheremetyevo"}, "sheremetievo", true},
		{"unrelated record", place{Name: "Berlin Brandenburg", CityName: "Berlin"}, "Moscow", false},
		{"empty query", place{CityName: "Moscow"}, "  ", false},
		{"empty fields", place{}, "Moscow", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(tt.p, tt.query))
		})
	}
}
