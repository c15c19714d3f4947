package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchResult is an item of the EODHD search API response.
type SearchResult struct {
	Code              string  `json:"Code"`
	Exchange          string  `json:"Exchange"`
	Name              string  `json:"Name"`
	Type              string  `json:"Type"`
	Country           string  `json:"Country"`
	Currency          string  `json:"Currency"`
	ISIN              string  `json:"ISIN"`
	PreviousClose     float64 `json:"previousClose"`
	PreviousCloseDate string  `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result: "CODE.EXCHANGE".
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search looks up securities matching term. When exchange is not empty,
// only results listed on that exchange are returned.
func (c *Client) Search(ctx context.Context, term, exchange string) ([]SearchResult, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{"fmt": {"json"}, "api_token": {c.Key}}
	if exchange != "" {
		q.Set("exchange", exchange)
	}
	addr := fmt.Sprintf("%s/search/%s?%s", strings.TrimSuffix(base, "/"), url.PathEscape(term), q.Encode())

	var results []SearchResult
	if err := jwget(ctx, c.client(), addr, &results); err != nil {
		return nil, err
	}
	if exchange == "" {
		return results, nil
	}
	// The exchange parameter is a hint, some results are listed elsewhere.
	filtered := results[:0]
	for _, r := range results {
		if strings.EqualFold(r.Exchange, exchange) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
