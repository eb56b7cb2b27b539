// README: Destination image lookup contract and the fixed fallback image.
package imagery

import (
	"context"
	"errors"
)

// FallbackImageURL is used whenever no provider image can be resolved.
const FallbackImageURL = "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?q=80&w=2679&auto=format&fit=crop"

var ErrNoImage = errors.New("no image found")

// Lookup finds one representative landscape image URL for a free-text query.
type Lookup interface {
	FindImage(ctx context.Context, query string) (string, error)
}

// Disabled never finds an image; callers fall back to FallbackImageURL.
type Disabled struct{}

func (Disabled) FindImage(context.Context, string) (string, error) {
	return "", ErrNoImage
}
