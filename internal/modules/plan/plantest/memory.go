// README: In-memory plan.Repository for tests.
package plantest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wanderlust/internal/modules/plan"
)

// Memory is a concurrency-safe in-memory plan.Repository. Err, when set, is
// returned by every method.
type Memory struct {
	mu    sync.Mutex
	plans []plan.Plan
	clock time.Time

	Err     error
	Creates int
}

func NewMemory(seed ...plan.Plan) *Memory {
	m := &Memory{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = m.tick()
			p.UpdatedAt = p.CreatedAt
		}
		m.plans = append(m.plans, p)
	}
	return m
}

// tick advances a fake clock so creation order is strict.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *Memory) FindByIdentity(_ context.Context, destination string, days int) (*plan.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.sorted(false) {
		if strings.EqualFold(p.Destination, destination) && p.Days == days {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Memory) Create(_ context.Context, p *plan.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.plans {
		if existing.Slug == p.Slug {
			return fmt.Errorf("%w: %s", plan.ErrConflict, p.Slug)
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = m.tick()
	p.UpdatedAt = p.CreatedAt
	m.plans = append(m.plans, *p)
	m.Creates++
	return nil
}

func (m *Memory) GetBySlug(_ context.Context, slug string) (*plan.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range m.plans {
		if p.Slug == slug && p.IsPublished {
			cp := p
			return &cp, nil
		}
	}
	return nil, plan.ErrNotFound
}

func (m *Memory) ListRecent(_ context.Context, limit int) ([]plan.Plan, error) {
	return m.filter(func(plan.Plan) bool { return true }, plan.ClampLimit(limit, plan.DefaultRecentLimit))
}

func (m *Memory) Search(_ context.Context, f plan.SearchFilter) ([]plan.Plan, error) {
	dest := strings.ToLower(strings.TrimSpace(f.Destination))
	return m.filter(func(p plan.Plan) bool {
		if !p.IsPublished {
			return false
		}
		if dest != "" && !strings.Contains(strings.ToLower(p.Destination), dest) {
			return false
		}
		return f.Days <= 0 || p.Days == f.Days
	}, plan.ClampLimit(f.Limit, plan.MaxSearchLimit))
}

func (m *Memory) ListFeatured(_ context.Context, limit int) ([]plan.Plan, error) {
	return m.filter(func(p plan.Plan) bool { return p.IsPublished && p.IsFeatured }, plan.ClampLimit(limit, plan.DefaultListLimit))
}

func (m *Memory) ListPopular(_ context.Context, limit int) ([]plan.Plan, error) {
	all, err := m.filter(func(p plan.Plan) bool { return p.IsPublished }, plan.MaxSearchLimit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Views > all[j].Views })
	if limit = plan.ClampLimit(limit, plan.DefaultListLimit); len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *Memory) IncrementViews(_ context.Context, slug string) (*plan.Plan, error) {
	return m.increment(slug, func(p *plan.Plan) { p.Views++ })
}

func (m *Memory) IncrementShares(_ context.Context, slug string) (*plan.Plan, error) {
	return m.increment(slug, func(p *plan.Plan) { p.Shares++ })
}

func (m *Memory) increment(slug string, bump func(*plan.Plan)) (*plan.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	for i := range m.plans {
		if m.plans[i].Slug == slug {
			bump(&m.plans[i])
			m.plans[i].UpdatedAt = m.tick()
			cp := m.plans[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// filter returns matches newest first.
func (m *Memory) filter(keep func(plan.Plan) bool, limit int) ([]plan.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []plan.Plan{}
	for _, p := range m.sorted(true) {
		if keep(p) {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) sorted(newestFirst bool) []plan.Plan {
	out := make([]plan.Plan, len(m.plans))
	copy(out, m.plans)
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
