package travelapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"tripbudget/internal/cache"
)

// fallbackCurrencies keeps the converter usable when the rate API is
// unreachable or unconfigured.
var fallbackCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "INR", "BRL"}

// RatesClient talks to the exchange-rate API. Rate tables are cached per base
// currency and concurrent lookups for the same base are collapsed into one
// request.
type RatesClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.LRU[map[string]float64]
	group      singleflight.Group
}

func NewRatesClient(baseURL, apiKey string, ttl time.Duration) *RatesClient {
	return &RatesClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
		cache:      cache.New[map[string]float64](50, ttl),
	}
}

// Configured reports whether an API key is available.
func (c *RatesClient) Configured() bool {
	return c.apiKey != ""
}

type ratesResponse struct {
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Latest returns the conversion-rate table for the base currency.
func (c *RatesClient) Latest(ctx context.Context, base string) (map[string]float64, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if rates, ok := c.cache.Get(base); ok {
		return rates, nil
	}

	v, err, _ := c.group.Do(base, func() (any, error) {
		url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, base)
		var resp ratesResponse
		if err := getJSON(ctx, c.httpClient, url, nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.ConversionRates) == 0 {
			return nil, &NetworkError{URL: url, Err: fmt.Errorf("empty rate table for %s", base)}
		}
		c.cache.Set(base, resp.ConversionRates)
		return resp.ConversionRates, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]float64), nil
}

// Convert converts amount from one currency to another using the latest
// rate table of the source currency.
func (c *RatesClient) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	rates, err := c.Latest(ctx, from)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("exchange rate not available for %s", to)
	}
	return amount * rate, nil
}

// Currencies lists the available currency codes, sorted. When the API cannot
// be reached a static fallback list is returned instead of an error: the
// currency list is not a critical feature.
func (c *RatesClient) Currencies(ctx context.Context) []string {
	rates, err := c.Latest(ctx, "USD")
	if err != nil {
		slog.WarnContext(ctx, "Currency list unavailable, using fallback", "error", err)
		return append([]string(nil), fallbackCurrencies...)
	}
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
