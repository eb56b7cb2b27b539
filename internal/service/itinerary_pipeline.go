package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/ai"
	"wanderlust/internal/imagery"
	"wanderlust/internal/modules/plan"
)

const (
	// DefaultDurationDays applies when the day-count reply is not a positive integer.
	DefaultDurationDays = 5
	DefaultTravelers    = 2
	DefaultBudgetLevel  = "moderate"
)

type GenerateRequest struct {
	Prompt      string
	Preferences []string
	Interests   []string
}

type Result struct {
	Plan *plan.Plan
	// Existing is true when a stored plan with the same destination and day count was returned.
	Existing bool
}

type PipelineDeps struct {
	LLM              ai.TextGenerator
	Images           imagery.Lookup
	Plans            plan.Repository
	Logger           *zap.Logger
	FallbackImageURL string
}

// Pipeline turns a free-text travel request into a stored plan. Model calls are
// issued one after another because each prompt depends on the previous answer.
type Pipeline struct {
	llm           ai.TextGenerator
	images        imagery.Lookup
	plans         plan.Repository
	logger        *zap.Logger
	fallbackImage string
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	images := deps.Images
	if images == nil {
		images = imagery.Disabled{}
	}
	fallback := deps.FallbackImageURL
	if fallback == "" {
		fallback = imagery.FallbackImageURL
	}
	return &Pipeline{
		llm:           deps.LLM,
		images:        images,
		plans:         deps.Plans,
		logger:        logger.Named("pipeline"),
		fallbackImage: fallback,
	}
}

func (p *Pipeline) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	started := time.Now()

	prompt, err := validatePrompt(req.Prompt)
	if err != nil {
		return nil, err
	}

	if err := p.classify(ctx, prompt); err != nil {
		return nil, err
	}

	destination, err := p.extractDestination(ctx, prompt)
	if err != nil {
		return nil, err
	}

	days, err := p.extractDays(ctx, prompt)
	if err != nil {
		return nil, err
	}

	slug := plan.IdentitySlug(destination, days)
	log := p.logger.With(zap.String("destination", destination), zap.Int("days", days), zap.String("slug", slug))

	existing, err := p.lookupExisting(ctx, destination, days)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Info("returning existing plan", zap.String("plan_id", existing.ID))
		return &Result{Plan: existing, Existing: true}, nil
	}

	doc, err := p.generateDocument(ctx, generationInput{
		Destination: destination,
		Days:        days,
		Travelers:   DefaultTravelers,
		BudgetLevel: DefaultBudgetLevel,
		Preferences: req.Preferences,
		Interests:   req.Interests,
		Prompt:      prompt,
	})
	if err != nil {
		return nil, err
	}

	imageQuery := doc.Destination.String()
	if imageQuery == "" {
		imageQuery = destination
	}
	imageURL := p.resolveImage(ctx, imageQuery)

	record := assemble(doc, assembleInput{
		Slug:        slug,
		Destination: destination,
		Days:        days,
		ImageURL:    imageURL,
		Prompt:      prompt,
		Preferences: req.Preferences,
		Interests:   req.Interests,
	})
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if err := p.plans.Create(ctx, record); err != nil {
		if errors.Is(err, plan.ErrConflict) {
			log.Warn("slug claimed by a concurrent request", zap.Error(err))
		}
		return nil, fmt.Errorf("save plan: %w", err)
	}

	log.Info("plan generated",
		zap.String("plan_id", record.ID),
		zap.Duration("elapsed", time.Since(started)),
	)
	return &Result{Plan: record}, nil
}

func validatePrompt(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrPromptRequired
	}
	return prompt, nil
}

// classify rejects the prompt only when the reply contains "no"; anything else passes.
func (p *Pipeline) classify(ctx context.Context, prompt string) error {
	reply, err := p.llm.Generate(ctx, classificationPrompt(prompt))
	if err != nil {
		return fmt.Errorf("classify prompt: %w", err)
	}
	p.logger.Debug("classified prompt", zap.String("reply", reply))
	if strings.Contains(strings.ToLower(reply), "no") {
		return ErrNotTravelRelated
	}
	return nil
}

func (p *Pipeline) extractDestination(ctx context.Context, prompt string) (string, error) {
	reply, err := p.llm.Generate(ctx, destinationPrompt(prompt))
	if err != nil {
		return "", fmt.Errorf("extract destination: %w", err)
	}
	destination := strings.TrimSpace(reply)
	if destination == "" {
		return "", fmt.Errorf("%w: model returned no destination", ErrGeneration)
	}
	return destination, nil
}

func (p *Pipeline) extractDays(ctx context.Context, prompt string) (int, error) {
	reply, err := p.llm.Generate(ctx, daysPrompt(prompt))
	if err != nil {
		return 0, fmt.Errorf("extract days: %w", err)
	}
	return parseDays(reply), nil
}

// parseDays reads the leading integer of the reply, falling back to DefaultDurationDays.
func parseDays(reply string) int {
	n, ok := parseLeadingInt(reply)
	if !ok || n <= 0 {
		return DefaultDurationDays
	}
	return n
}

// lookupExisting treats (destination, days) as a cache key over stored plans.
func (p *Pipeline) lookupExisting(ctx context.Context, destination string, days int) (*plan.Plan, error) {
	existing, err := p.plans.FindByIdentity(ctx, destination, days)
	if err != nil {
		return nil, fmt.Errorf("lookup existing plan: %w", err)
	}
	return existing, nil
}

func (p *Pipeline) generateDocument(ctx context.Context, in generationInput) (*Document, error) {
	reply, err := p.llm.Generate(ctx, generationPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}
	doc, err := ParseDocument(reply)
	if err != nil {
		p.logger.Error("model reply could not be parsed", zap.Int("reply_bytes", len(reply)), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// resolveImage never fails; lookup errors and empty results use the fallback image.
func (p *Pipeline) resolveImage(ctx context.Context, query string) string {
	u, err := p.images.FindImage(ctx, query)
	if err != nil || strings.TrimSpace(u) == "" {
		p.logger.Warn("image lookup failed, using fallback", zap.String("query", query), zap.Error(err))
		return p.fallbackImage
	}
	return u
}

type assembleInput struct {
	Slug        string
	Destination string
	Days        int
	ImageURL    string
	Prompt      string
	Preferences []string
	Interests   []string
}

// assemble merges the model document with the identity fields and fixed defaults.
// Destination and days come from extraction so the stored record matches its slug.
func assemble(doc *Document, in assembleInput) *plan.Plan {
	p := &plan.Plan{
		Slug:            in.Slug,
		Destination:     in.Destination,
		Title:           doc.Title.String(),
		Subtitle:        doc.Subtitle.String(),
		Description:     doc.Description.String(),
		Days:            in.Days,
		ImageURL:        in.ImageURL,
		BestTimeToVisit: doc.BestTimeToVisit.String(),
		Climate:         doc.Climate.String(),
		Language:        doc.Language.String(),
		Currency:        doc.Currency.String(),
		Travelers:       DefaultTravelers,
		BudgetLevel:     DefaultBudgetLevel,
		SourcePrompt:    in.Prompt,
		Preferences:     in.Preferences,
		Interests:       in.Interests,
		IsPublished:     true,
		Meta: plan.Meta{
			Title:       fmt.Sprintf("%s %d-Day Travel Plan", in.Destination, in.Days),
			Description: fmt.Sprintf("Complete %d-day itinerary for %s with highlights, itinerary, and travel tips.", in.Days, in.Destination),
		},
	}

	for _, h := range doc.Highlights {
		p.Highlights = append(p.Highlights, plan.Highlight{
			Title:       h.Title.String(),
			Description: h.Description.String(),
			Icon:        h.Icon.String(),
			Category:    plan.Category(h.Category.String()),
			Rating:      h.Rating.String(),
		})
	}
	for _, d := range doc.Itinerary {
		day := plan.DayPlan{
			Day:        int(d.Day),
			Title:      d.Title.String(),
			ImageURL:   d.ImageURL.String(),
			Activities: []plan.Activity{},
		}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, plan.Activity{
				Time:        a.Time.String(),
				Title:       a.Title.String(),
				Description: a.Description.String(),
			})
		}
		p.Itinerary = append(p.Itinerary, day)
	}
	for _, t := range doc.Tips {
		p.Tips = append(p.Tips, plan.Tip{
			Title:       t.Title.String(),
			Description: t.Description.String(),
			Category:    plan.TipCategory(t.Category.String()),
		})
	}
	if len(doc.Budget) > 0 {
		p.Budget = make(map[string]string, len(doc.Budget))
		for k, v := range doc.Budget {
			p.Budget[k] = v.String()
		}
	}
	if p.Highlights == nil {
		p.Highlights = []plan.Highlight{}
	}
	if p.Itinerary == nil {
		p.Itinerary = []plan.DayPlan{}
	}

	p.Normalize()
	return p
}
