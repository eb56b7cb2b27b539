// README: Unsplash photo search client (landscape, first result, "regular" size).
package imagery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const unsplashAPI = "https://api.unsplash.com"

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
	Errors []string `json:"errors,omitempty"`
}

type UnsplashLookup struct {
	accessKey string
	baseURL   string
	http      *http.Client
}

func NewUnsplashLookup(accessKey string) *UnsplashLookup {
	return &UnsplashLookup{
		accessKey: accessKey,
		baseURL:   unsplashAPI,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (u *UnsplashLookup) FindImage(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", "1")
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("unsplash: build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("unsplash: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("unsplash: read response: %w", err)
	}

	var out unsplashSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("unsplash: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash: status %d: %s", resp.StatusCode, strings.Join(out.Errors, "; "))
	}
	if len(out.Results) == 0 || out.Results[0].URLs.Regular == "" {
		return "", ErrNoImage
	}
	return out.Results[0].URLs.Regular, nil
}
