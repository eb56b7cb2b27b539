// README: Travel plan model, highlight categories, defaults and validation.
package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryMuseum     Category = "museum"
	CategoryPalace     Category = "palace"
	CategoryFood       Category = "food"
	CategoryTip        Category = "tip"
	CategoryBudget     Category = "budget"
	CategoryTransport  Category = "transport"
	CategoryNature     Category = "nature"
	CategoryBeach      Category = "beach"
	CategoryShopping   Category = "shopping"
	CategoryExperience Category = "experience"
	CategoryCulture    Category = "culture"
)

// Categories lists every accepted highlight category in display order.
var Categories = []Category{
	CategoryAttraction, CategoryMuseum, CategoryPalace, CategoryFood,
	CategoryTip, CategoryBudget, CategoryTransport, CategoryNature,
	CategoryBeach, CategoryShopping, CategoryExperience, CategoryCulture,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type TipCategory string

const (
	TipTransportation TipCategory = "transportation"
	TipFood           TipCategory = "food"
	TipSafety         TipCategory = "safety"
	TipMoney          TipCategory = "money"
	TipCulture        TipCategory = "culture"
	TipPacking        TipCategory = "packing"
	TipShopping       TipCategory = "shopping"
	TipGeneral        TipCategory = "general"
)

func (c TipCategory) Valid() bool {
	switch c {
	case TipTransportation, TipFood, TipSafety, TipMoney, TipCulture, TipPacking, TipShopping, TipGeneral:
		return true
	}
	return false
}

const (
	DefaultHighlightIcon = "📍"
	DefaultLanguage      = "English"
	DefaultCurrency      = "USD"
	DefaultBudgetLevel   = "moderate"
)

type Meta struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

type Highlight struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Icon        string   `json:"icon" bson:"icon"`
	Category    Category `json:"category" bson:"category"`
	Rating      string   `json:"rating,omitempty" bson:"rating,omitempty"`
}

type Activity struct {
	Time        string `json:"time" bson:"time"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day" bson:"day"`
	Title      string     `json:"title" bson:"title"`
	ImageURL   string     `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Activities []Activity `json:"activities" bson:"activities"`
}

type Tip struct {
	Title       string      `json:"title" bson:"title"`
	Description string      `json:"description" bson:"description"`
	Category    TipCategory `json:"category" bson:"category"`
}

// Plan is a generated, persisted itinerary. Slug is its public handle.
type Plan struct {
	ID              string            `json:"id" bson:"_id"`
	Slug            string            `json:"slug" bson:"slug"`
	Destination     string            `json:"destination" bson:"destination"`
	Title           string            `json:"title" bson:"title"`
	Subtitle        string            `json:"subtitle" bson:"subtitle"`
	Description     string            `json:"description" bson:"description"`
	Days            int               `json:"days" bson:"days"`
	ImageURL        string            `json:"imageUrl" bson:"imageUrl"`
	Meta            Meta              `json:"meta" bson:"meta"`
	Highlights      []Highlight       `json:"highlights" bson:"highlights"`
	Itinerary       []DayPlan         `json:"itinerary" bson:"itinerary"`
	Tips            []Tip             `json:"tips,omitempty" bson:"tips,omitempty"`
	Budget          map[string]string `json:"budget,omitempty" bson:"budget,omitempty"`
	BestTimeToVisit string            `json:"bestTimeToVisit,omitempty" bson:"bestTimeToVisit,omitempty"`
	Climate         string            `json:"climate,omitempty" bson:"climate,omitempty"`
	Language        string            `json:"language" bson:"language"`
	Currency        string            `json:"currency" bson:"currency"`
	Travelers       int               `json:"travelers" bson:"travelers"`
	BudgetLevel     string            `json:"budgetLevel" bson:"budgetLevel"`
	SourcePrompt    string            `json:"createdFromPrompt,omitempty" bson:"createdFromPrompt,omitempty"`
	Preferences     []string          `json:"preferences,omitempty" bson:"preferences,omitempty"`
	Interests       []string          `json:"interests,omitempty" bson:"interests,omitempty"`
	Views           int               `json:"views" bson:"views"`
	Shares          int               `json:"shares" bson:"shares"`
	IsPublished     bool              `json:"isPublished" bson:"isPublished"`
	IsFeatured      bool              `json:"isFeatured" bson:"isFeatured"`
	CreatedAt       time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// FullTitle is the long display title, e.g. "Paris: Paris Adventure - A 5-day journey".
func (p *Plan) FullTitle() string {
	return fmt.Sprintf("%s: %s - %s", p.Destination, p.Title, p.Subtitle)
}

// SortedItinerary returns a copy of the itinerary ordered by day number.
func (p *Plan) SortedItinerary() []DayPlan {
	out := make([]DayPlan, len(p.Itinerary))
	copy(out, p.Itinerary)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Normalize trims text fields and fills schema defaults. It does not touch counters.
func (p *Plan) Normalize() {
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	p.Destination = strings.TrimSpace(p.Destination)
	p.Title = strings.TrimSpace(p.Title)
	p.Subtitle = strings.TrimSpace(p.Subtitle)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.Meta.Title = strings.TrimSpace(p.Meta.Title)
	p.Meta.Description = strings.TrimSpace(p.Meta.Description)
	p.BestTimeToVisit = strings.TrimSpace(p.BestTimeToVisit)
	p.Climate = strings.TrimSpace(p.Climate)
	p.Language = orDefault(strings.TrimSpace(p.Language), DefaultLanguage)
	p.Currency = orDefault(strings.TrimSpace(p.Currency), DefaultCurrency)
	p.BudgetLevel = orDefault(strings.TrimSpace(p.BudgetLevel), DefaultBudgetLevel)
	if p.Travelers < 1 {
		p.Travelers = 1
	}

	for i := range p.Highlights {
		h := &p.Highlights[i]
		h.Title = strings.TrimSpace(h.Title)
		h.Description = strings.TrimSpace(h.Description)
		h.Icon = orDefault(strings.TrimSpace(h.Icon), DefaultHighlightIcon)
		h.Rating = strings.TrimSpace(h.Rating)
		h.Category = Category(strings.ToLower(strings.TrimSpace(string(h.Category))))
		if h.Category == "" {
			h.Category = CategoryAttraction
		}
	}

	for i := range p.Itinerary {
		d := &p.Itinerary[i]
		d.Title = strings.TrimSpace(d.Title)
		d.ImageURL = strings.TrimSpace(d.ImageURL)
		for j := range d.Activities {
			a := &d.Activities[j]
			a.Time = strings.TrimSpace(a.Time)
			a.Title = strings.TrimSpace(a.Title)
			a.Description = strings.TrimSpace(a.Description)
		}
	}

	for i := range p.Tips {
		t := &p.Tips[i]
		t.Title = strings.TrimSpace(t.Title)
		t.Description = strings.TrimSpace(t.Description)
		t.Category = TipCategory(strings.ToLower(strings.TrimSpace(string(t.Category))))
		if !t.Category.Valid() {
			t.Category = TipGeneral
		}
	}

	p.Preferences = compactStrings(p.Preferences)
	p.Interests = compactStrings(p.Interests)
}

// Validate reports the first missing required field or out-of-range value.
func (p *Plan) Validate() error {
	required := []struct{ name, value string }{
		{"slug", p.Slug},
		{"destination", p.Destination},
		{"title", p.Title},
		{"subtitle", p.Subtitle},
		{"description", p.Description},
		{"imageUrl", p.ImageURL},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidPlan, f.name)
		}
	}
	if p.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1", ErrInvalidPlan)
	}
	for i, h := range p.Highlights {
		if h.Title == "" || h.Description == "" {
			return fmt.Errorf("%w: highlights[%d] needs a title and description", ErrInvalidPlan, i)
		}
		if !h.Category.Valid() {
			return fmt.Errorf("%w: highlights[%d] has unknown category %q", ErrInvalidPlan, i, h.Category)
		}
	}
	for i, d := range p.Itinerary {
		if d.Day < 1 {
			return fmt.Errorf("%w: itinerary[%d] day must be at least 1", ErrInvalidPlan, i)
		}
		if d.Title == "" {
			return fmt.Errorf("%w: itinerary[%d] title is required", ErrInvalidPlan, i)
		}
		for j, a := range d.Activities {
			if a.Time == "" || a.Title == "" {
				return fmt.Errorf("%w: itinerary[%d].activities[%d] needs a time and title", ErrInvalidPlan, i, j)
			}
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// compactStrings trims entries, drops blanks, and returns nil for an empty result.
func compactStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
