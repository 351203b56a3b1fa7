// Package pexels looks up destination photos via the Pexels search API.
package pexels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://api.pexels.com/v1"
	// FallbackImageURL is returned whenever a lookup fails or finds nothing.
	FallbackImageURL = "https://images.pexels.com/photos/3408744/pexels-photo-3408744.jpeg"
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

type searchResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func New(logger *zap.Logger, token string) *Client {
	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// ImageURL returns a photo URL for the given destination query. Any
// failure falls back to a fixed stock photo so swipe sessions keep going.
func (c *Client) ImageURL(ctx context.Context, query string) string {
	if c == nil || c.token == "" {
		return FallbackImageURL
	}

	photo, err := c.search(ctx, fmt.Sprintf("%s landscape travel", query))
	if err != nil {
		c.logger.Debug("pexels lookup failed", zap.String("query", query), zap.Error(err))
		return FallbackImageURL
	}
	if photo == "" {
		return FallbackImageURL
	}

	return photo
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/search", c.APIURL), nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", c.token)

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("orientation", "portrait")
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if len(result.Photos) == 0 {
		return "", nil
	}

	return result.Photos[0].Src.Large, nil
}
