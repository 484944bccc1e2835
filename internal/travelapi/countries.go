package travelapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripbudget/internal/cache"
	"tripbudget/internal/core"
)

// Country mirrors the REST Countries response shape, reduced to the fields
// the destination view renders.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2  string `json:"cca2"`
	Flags struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"flags"`
	Capital    []string          `json:"capital"`
	Population int64             `json:"population"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Languages map[string]string `json:"languages"`
	Timezones []string          `json:"timezones"`
	IDD       struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
}

// CallingCode joins the IDD root with its first suffix ("+3", "1" -> "+31").
func (c Country) CallingCode() string {
	if c.IDD.Root == "" {
		return ""
	}
	if len(c.IDD.Suffixes) == 1 {
		return c.IDD.Root + c.IDD.Suffixes[0]
	}
	return c.IDD.Root
}

// CountriesClient queries country metadata by code or name.
type CountriesClient struct {
	baseURL    string
	httpClient *http.Client
	byCode     *cache.LRU[Country]
}

func NewCountriesClient(baseURL string, ttl time.Duration) *CountriesClient {
	return &CountriesClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		byCode:     cache.New[Country](200, ttl),
	}
}

// ByCode looks up a single country by its ISO 3166-1 alpha-2 code.
func (c *CountriesClient) ByCode(ctx context.Context, code string) (Country, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if country, ok := c.byCode.Get(code); ok {
		return country, nil
	}

	u := fmt.Sprintf("%s/alpha/%s", c.baseURL, url.PathEscape(code))
	var countries []Country
	if err := getJSON(ctx, c.httpClient, u, nil, &countries); err != nil {
		return Country{}, err
	}
	if len(countries) == 0 {
		return Country{}, fmt.Errorf("country %s: %w", code, core.ErrNotFound)
	}

	c.byCode.Set(code, countries[0])
	return countries[0], nil
}

// Search looks up countries by (partial) name.
func (c *CountriesClient) Search(ctx context.Context, term string) ([]Country, error) {
	u := fmt.Sprintf("%s/name/%s", c.baseURL, url.PathEscape(strings.TrimSpace(term)))
	var countries []Country
	if err := getJSON(ctx, c.httpClient, u, nil, &countries); err != nil {
		var nerr *NetworkError
		// The API answers 404 for no matches; treat that as an empty result.
		if errors.As(err, &nerr) && nerr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return countries, nil
}
