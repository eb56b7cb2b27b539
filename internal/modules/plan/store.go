// README: Plan store backed by PostgreSQL; nested sections live in JSONB columns.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const planColumns = `
	id, slug, destination, title, subtitle, description, days, image_url,
	meta_title, meta_description, highlights, itinerary, tips, budget,
	best_time_to_visit, climate, language, currency, travelers, budget_level,
	created_from_prompt, preferences, interests, views, shares,
	is_published, is_featured, created_at, updated_at`

type Store struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) FindByIdentity(ctx context.Context, destination string, days int) (*Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE lower(destination) = lower($1) AND days = $2
		ORDER BY created_at ASC, id ASC
		LIMIT 1`, destination, days,
	)
	p, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *Store) Create(ctx context.Context, p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	highlights, itinerary, tips, budget, err := encodeSections(p)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO plans (`+planColumns+`)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25,
			$26, $27, $28, $29
		)`,
		p.ID, p.Slug, p.Destination, p.Title, p.Subtitle, p.Description, p.Days, p.ImageURL,
		p.Meta.Title, p.Meta.Description, highlights, itinerary, tips, budget,
		p.BestTimeToVisit, p.Climate, p.Language, p.Currency, p.Travelers, p.BudgetLevel,
		p.SourcePrompt, p.Preferences, p.Interests, p.Views, p.Shares,
		p.IsPublished, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, p.Slug)
	}
	return err
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE slug = $1 AND is_published`, normalizeSlug(slug),
	)
	p, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]Plan, error) {
	return s.list(ctx, `
		SELECT `+planColumns+`
		FROM plans
		ORDER BY created_at DESC
		LIMIT $1`, ClampLimit(limit, DefaultRecentLimit))
}

func (s *Store) Search(ctx context.Context, f SearchFilter) ([]Plan, error) {
	where := []string{"is_published"}
	args := []any{}
	if d := strings.TrimSpace(f.Destination); d != "" {
		args = append(args, escapeLike(d))
		where = append(where, fmt.Sprintf("destination ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.Days > 0 {
		args = append(args, f.Days)
		where = append(where, fmt.Sprintf("days = $%d", len(args)))
	}
	args = append(args, ClampLimit(f.Limit, MaxSearchLimit))

	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args))
	return s.list(ctx, query, args...)
}

func (s *Store) ListFeatured(ctx context.Context, limit int) ([]Plan, error) {
	return s.list(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE is_published AND is_featured
		ORDER BY created_at DESC
		LIMIT $1`, ClampLimit(limit, DefaultListLimit))
}

func (s *Store) ListPopular(ctx context.Context, limit int) ([]Plan, error) {
	return s.list(ctx, `
		SELECT `+planColumns+`
		FROM plans
		WHERE is_published
		ORDER BY views DESC, created_at DESC
		LIMIT $1`, ClampLimit(limit, DefaultListLimit))
}

func (s *Store) IncrementViews(ctx context.Context, slug string) (*Plan, error) {
	return s.increment(ctx, "views", slug)
}

func (s *Store) IncrementShares(ctx context.Context, slug string) (*Plan, error) {
	return s.increment(ctx, "shares", slug)
}

// increment bumps a counter column in a single UPDATE so concurrent callers never lose counts.
func (s *Store) increment(ctx context.Context, column, slug string) (*Plan, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE plans
		SET `+column+` = `+column+` + 1, updated_at = $2
		WHERE slug = $1
		RETURNING `+planColumns, normalizeSlug(slug), s.now().UTC(),
	)
	p, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Plan, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	var highlights, itinerary, tips, budget []byte
	err := row.Scan(
		&p.ID, &p.Slug, &p.Destination, &p.Title, &p.Subtitle, &p.Description, &p.Days, &p.ImageURL,
		&p.Meta.Title, &p.Meta.Description, &highlights, &itinerary, &tips, &budget,
		&p.BestTimeToVisit, &p.Climate, &p.Language, &p.Currency, &p.Travelers, &p.BudgetLevel,
		&p.SourcePrompt, &p.Preferences, &p.Interests, &p.Views, &p.Shares,
		&p.IsPublished, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeSections(&p, highlights, itinerary, tips, budget); err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeSections(p *Plan) (highlights, itinerary, tips, budget []byte, err error) {
	if highlights, err = marshalOr(p.Highlights, "[]"); err != nil {
		return
	}
	if itinerary, err = marshalOr(p.Itinerary, "[]"); err != nil {
		return
	}
	if tips, err = marshalOr(p.Tips, "[]"); err != nil {
		return
	}
	budget, err = marshalOr(p.Budget, "{}")
	return
}

func decodeSections(p *Plan, highlights, itinerary, tips, budget []byte) error {
	sections := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"highlights", highlights, &p.Highlights},
		{"itinerary", itinerary, &p.Itinerary},
		{"tips", tips, &p.Tips},
		{"budget", budget, &p.Budget},
	}
	for _, sec := range sections {
		if len(sec.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(sec.raw, sec.dst); err != nil {
			return fmt.Errorf("decode %s: %w", sec.name, err)
		}
	}
	if len(p.Tips) == 0 {
		p.Tips = nil
	}
	if len(p.Budget) == 0 {
		p.Budget = nil
	}
	return nil
}

func marshalOr[T any](v T, empty string) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return []byte(empty), nil
	}
	return b, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
