package service

import (
	"context"

	"go.uber.org/zap"

	"wanderlust/internal/modules/plan"
)

// Catalog serves the read side of stored plans and their engagement counters.
type Catalog struct {
	plans  plan.Repository
	logger *zap.Logger
}

func NewCatalog(plans plan.Repository, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{plans: plans, logger: logger.Named("catalog")}
}

func (c *Catalog) Search(ctx context.Context, f plan.SearchFilter) ([]plan.Plan, error) {
	f.Limit = plan.ClampLimit(f.Limit, plan.MaxSearchLimit)
	return c.plans.Search(ctx, f)
}

func (c *Catalog) Recent(ctx context.Context, limit int) ([]plan.Plan, error) {
	return c.plans.ListRecent(ctx, plan.ClampLimit(limit, plan.DefaultRecentLimit))
}

func (c *Catalog) Featured(ctx context.Context, limit int) ([]plan.Plan, error) {
	return c.plans.ListFeatured(ctx, plan.ClampLimit(limit, plan.DefaultListLimit))
}

func (c *Catalog) Popular(ctx context.Context, limit int) ([]plan.Plan, error) {
	return c.plans.ListPopular(ctx, plan.ClampLimit(limit, plan.DefaultListLimit))
}

// View returns a published plan and counts the view. A failed count is logged, not returned.
func (c *Catalog) View(ctx context.Context, slug string) (*plan.Plan, error) {
	p, err := c.plans.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	updated, err := c.plans.IncrementViews(ctx, p.Slug)
	switch {
	case err != nil:
		c.logger.Warn("count view failed", zap.String("slug", p.Slug), zap.Error(err))
	case updated != nil:
		p = updated
	}
	return p, nil
}

// Share counts a share of a published plan and returns the new share count.
func (c *Catalog) Share(ctx context.Context, slug string) (int, error) {
	p, err := c.plans.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	updated, err := c.plans.IncrementShares(ctx, p.Slug)
	if err != nil {
		return 0, err
	}
	if updated == nil {
		return 0, plan.ErrNotFound
	}
	return updated.Shares, nil
}
