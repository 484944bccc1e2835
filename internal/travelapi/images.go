package travelapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// ImagesClient fetches a representative photo for a destination from
// Unsplash. It never fails: without a key, on error, or with no results it
// returns a placeholder URL instead.
type ImagesClient struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

func NewImagesClient(baseURL, accessKey string) *ImagesClient {
	return &ImagesClient{
		baseURL:    baseURL,
		accessKey:  accessKey,
		httpClient: newHTTPClient(),
	}
}

type photoSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// DestinationImage returns an image URL for the destination.
func (c *ImagesClient) DestinationImage(ctx context.Context, destination string) string {
	if c.accessKey == "" {
		return placeholderImage(destination)
	}

	u := fmt.Sprintf("%s/search/photos?query=%s&per_page=1", c.baseURL, url.QueryEscape(destination))
	header := http.Header{"Authorization": []string{"Client-ID " + c.accessKey}}

	var resp photoSearchResponse
	if err := getJSON(ctx, c.httpClient, u, header, &resp); err != nil {
		slog.WarnContext(ctx, "Image search failed, using placeholder",
			"destination", destination, "error", err)
		return placeholderImage(destination)
	}
	if len(resp.Results) == 0 {
		return placeholderImage(destination)
	}
	return resp.Results[0].URLs.Regular
}

func placeholderImage(destination string) string {
	return "https://via.placeholder.com/400x300/4CAF50/FFFFFF?text=" + url.QueryEscape(destination)
}
