package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const pricesBaseURL = "https://api.travelpayouts.com/aviasales/v3/prices_for_dates"

// FlightClient looks up the cheapest fare for one route and date.
type FlightClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func newFlightClient(token string, log *zap.Logger) *FlightClient {
	return &FlightClient{
		baseURL: pricesBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type pricesResponse struct {
	Data []Flight `json:"data"`
}

// Track queries fares from origin to dest on date (YYYY-MM-DD) and renders
// the cheapest quote as user-facing text. Every failure mode degrades to a
// human-readable string; the caller forwards whatever comes back.
func (c *FlightClient) Track(ctx context.Context, origin, dest, date string) string {
	c.log.Info("tracking fares",
		zap.String("origin", origin), zap.String("destination", dest), zap.String("date", date))

	if origin == "" || dest == "" {
		c.log.Error("fare lookup called with empty route")
		return msgFareFailed
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.log.Error("fare lookup called with a malformed date", zap.String("date", date))
		return msgFareFailed
	}
	if c.token == "" {
		c.log.Error("aviasales api token is not configured")
		return msgFareFailed
	}

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", dest)
	params.Set("currency", "rub")
	params.Set("departure_at", date)
	params.Set("sorting", "price")
	params.Set("direct", "true")
	params.Set("limit", "10")
	params.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.log.Error("could not build fare request", zap.Error(err))
		return msgFareFailed
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("fare request failed", zap.Error(err))
		return msgFareFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("fare request returned an unexpected status", zap.String("status", resp.Status))
		return msgFareFailed
	}

	var prices pricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		c.log.Error("could not decode fare response", zap.Error(err))
		return msgFareFailed
	}

	if len(prices.Data) == 0 {
		c.log.Warn("no fares found",
			zap.String("origin", origin), zap.String("destination", dest), zap.String("date", date))
		return msgNoFares
	}

	cheapest := prices.Data[0]
	for _, f := range prices.Data[1:] {
		// strict less keeps the first-seen quote on a price tie
		if f.Price < cheapest.Price {
			cheapest = f
		}
	}

	c.log.Info("cheapest fare found",
		zap.Int("price", cheapest.Price), zap.String("airline", cheapest.Airline))

	return fmt.Sprintf(
		"Самый дешевый билет: %d руб.\nАвиакомпания: %s\nРейс: %s\nДата вылета: %s",
		cheapest.Price, cheapest.Airline, cheapest.FlightNumber, cheapest.DepartureAt,
	)
}
