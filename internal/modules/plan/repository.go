package plan

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("plan not found")
	ErrConflict    = errors.New("plan slug already exists")
	ErrInvalidPlan = errors.New("invalid plan")
)

const (
	MaxSearchLimit     = 30
	DefaultRecentLimit = 3
	DefaultListLimit   = 6
)

// SearchFilter narrows Search. Zero values mean "no filter".
type SearchFilter struct {
	Destination string
	Days        int
	Limit       int
}

// Repository persists plans. Find/Increment methods return (nil, nil) when nothing matches.
type Repository interface {
	FindByIdentity(ctx context.Context, destination string, days int) (*Plan, error)
	Create(ctx context.Context, p *Plan) error
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	ListRecent(ctx context.Context, limit int) ([]Plan, error)
	Search(ctx context.Context, f SearchFilter) ([]Plan, error)
	ListFeatured(ctx context.Context, limit int) ([]Plan, error)
	ListPopular(ctx context.Context, limit int) ([]Plan, error)
	IncrementViews(ctx context.Context, slug string) (*Plan, error)
	IncrementShares(ctx context.Context, slug string) (*Plan, error)
}

// ClampLimit applies def when limit is unset and caps the result at MaxSearchLimit.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return limit
}
