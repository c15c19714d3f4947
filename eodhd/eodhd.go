// Package eodhd fetches market quotes and betas from eodhd.com.
package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pnl"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Defaults of a Client.
const (
	DefaultBaseURL  = "https://eodhd.com/api"
	DefaultExchange = "NSE"
	PricePath       = "$.close"
	BetaPath        = "$.Technicals.Beta"
)

// ErrNoPrice is returned when the feed has no usable price for a symbol.
var ErrNoPrice = errors.New("no price")

// Client fetches quotes from the EODHD API.
type Client struct {
	Key      string
	BaseURL  string // DefaultBaseURL when empty
	Exchange string // appended to symbols without an exchange suffix
	Currency string // currency of the fetched prices

	// JSONPath expressions locating the price in the real-time payload and
	// the beta in the fundamentals payload.
	PricePath string
	BetaPath  string

	HTTP        *http.Client
	Concurrency int // simultaneous symbols, 4 when zero
	Log         zerolog.Logger
}

// NewClient returns a client with daily cached HTTP responses stored in cacheDir
// (the system temp dir when empty).
func NewClient(key, currency, cacheDir string, log zerolog.Logger) *Client {
	return &Client{
		Key:       key,
		BaseURL:   DefaultBaseURL,
		Exchange:  DefaultExchange,
		Currency:  currency,
		PricePath: PricePath,
		BetaPath:  BetaPath,
		HTTP:      newDailyCachingClient(cacheDir, log),
		Log:       log,
	}
}

// Ticker returns the EODHD ticker of symbol: "SYMBOL.EXCHANGE".
func (c *Client) Ticker(symbol string) string {
	if strings.Contains(symbol, ".") || c.Exchange == "" {
		return symbol
	}
	return symbol + "." + c.Exchange
}

func (c *Client) addr(endpoint, symbol string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{"fmt": {"json"}, "api_token": {c.Key}}
	return fmt.Sprintf("%s/%s/%s?%s", strings.TrimSuffix(base, "/"), endpoint, url.PathEscape(c.Ticker(symbol)), q.Encode())
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Quote fetches the latest price and the beta of symbol.
// The beta is nil when the fundamentals do not provide one.
func (c *Client) Quote(ctx context.Context, symbol string) (pnl.Quote, error) {
	rt, err := jget(ctx, c.client(), c.addr("real-time", symbol))
	if err != nil {
		return pnl.Quote{}, err
	}
	price, err := lookup(c.PricePath, PricePath, rt)
	if err != nil {
		return pnl.Quote{}, fmt.Errorf("%w for %s: %v", ErrNoPrice, symbol, err)
	}
	q := pnl.Quote{Price: pnl.M(price, c.Currency)}

	fundamentals, err := jget(ctx, c.client(), c.addr("fundamentals", symbol))
	if err != nil {
		if ctx.Err() != nil {
			return pnl.Quote{}, ctx.Err()
		}
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("no fundamentals, beta unknown")
		return q, nil
	}
	if beta, err := lookup(c.BetaPath, BetaPath, fundamentals); err == nil {
		b := beta.InexactFloat64()
		q.Beta = &b
	}
	return q, nil
}

// Fetch fetches the quotes of symbols concurrently.
// Symbols the feed cannot quote are logged and left out of the result, an
// error is only returned when ctx is done.
func (c *Client) Fetch(ctx context.Context, symbols []string) (map[string]pnl.Quote, error) {
	var mu sync.Mutex
	quotes := make(map[string]pnl.Quote, len(symbols))

	limit := c.Concurrency
	if limit <= 0 {
		limit = 4
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, symbol := range symbols {
		g.Go(func() error {
			q, err := c.Quote(ctx, symbol)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.Log.Warn().Err(err).Str("symbol", symbol).Msg("skipping symbol")
				return nil
			}
			mu.Lock()
			quotes[symbol] = q
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

// lookup evaluates a JSONPath expression on data and converts the result to
// a decimal. "NA" and null values are errors.
func lookup(path, fallback string, data any) (decimal.Decimal, error) {
	if path == "" {
		path = fallback
	}
	v, err := jsonpath.Get(path, data)
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch v := v.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%s is null", path)
	default:
		return decimal.Decimal{}, fmt.Errorf("%s is not a number: %v", path, v)
	}
}
