// README: Google Places image lookup; photos are proxied so the API key stays server-side.
package imagery

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"googlemaps.github.io/maps"
)

// PhotoPath is the route prefix under which PlacesLookup photos are served.
const PhotoPath = "/api/images/places/"

const photoMaxWidth = 1600

type PlacesLookup struct {
	client     *maps.Client
	publicBase string
}

// NewPlacesLookup creates a Places-backed lookup. publicBase prefixes the returned photo URLs.
func NewPlacesLookup(apiKey, publicBase string, opts ...maps.ClientOption) (*PlacesLookup, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesLookup{client: client, publicBase: publicBase}, nil
}

// FindImage returns a proxied URL for the first photo of the best text-search match.
func (p *PlacesLookup) FindImage(ctx context.Context, query string) (string, error) {
	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}
	for _, r := range resp.Results {
		for _, photo := range r.Photos {
			if photo.PhotoReference != "" {
				return p.publicBase + PhotoPath + url.PathEscape(photo.PhotoReference), nil
			}
		}
	}
	return "", ErrNoImage
}

// Photo streams the bytes of a Places photo. The caller closes the reader.
func (p *PlacesLookup) Photo(ctx context.Context, reference string) (string, io.ReadCloser, error) {
	resp, err := p.client.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       photoMaxWidth,
	})
	if err != nil {
		return "", nil, fmt.Errorf("place photo error: %w", err)
	}
	return resp.ContentType, resp.Data, nil
}
