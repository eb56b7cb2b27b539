package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Document is the itinerary JSON emitted by the model. Scalars are tolerant of
// numbers sent as strings and strings sent as numbers.
type Document struct {
	Destination     flexString            `json:"destination"`
	Title           flexString            `json:"title"`
	Subtitle        flexString            `json:"subtitle"`
	Description     flexString            `json:"description"`
	Days            flexInt               `json:"days"`
	Highlights      []docHighlight        `json:"highlights"`
	Itinerary       []docDay              `json:"itinerary"`
	Tips            []docTip              `json:"tips"`
	Budget          map[string]flexString `json:"budget"`
	BestTimeToVisit flexString            `json:"bestTimeToVisit"`
	Climate         flexString            `json:"climate"`
	Language        flexString            `json:"language"`
	Currency        flexString            `json:"currency"`
}

type docHighlight struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	Icon        flexString `json:"icon"`
	Category    flexString `json:"category"`
	Rating      flexString `json:"rating"`
}

type docDay struct {
	Day        flexInt       `json:"day"`
	Title      flexString    `json:"title"`
	ImageURL   flexString    `json:"imageUrl"`
	Activities []docActivity `json:"activities"`
}

type docActivity struct {
	Time        flexString `json:"time"`
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
}

type docTip struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	Category    flexString `json:"category"`
}

// ParseDocument decodes the model reply directly, then retries on the span from the
// first "{" to the last "}" to get past surrounding prose or code fences.
func ParseDocument(text string) (*Document, error) {
	var doc Document
	directErr := json.Unmarshal([]byte(strings.TrimSpace(text)), &doc)
	if directErr == nil {
		return &doc, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: unparseable model response: no JSON object found", ErrGeneration)
	}
	doc = Document{}
	if err := json.Unmarshal([]byte(text[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: unparseable model response: %v", ErrGeneration, err)
	}
	return &doc, nil
}

// parseLeadingInt reads an optional sign and the leading decimal digits of s.
// It reports false when there are no digits or the value overflows.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case b[0] == '{' || b[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*f = flexString(buf.String())
	default:
		*f = flexString(b)
	}
	return nil
}

func (f flexString) String() string { return strings.TrimSpace(string(f)) }

type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, _ := parseLeadingInt(s)
		*f = flexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		*f = 0
		return nil
	}
	if math.IsNaN(n) || n > math.MaxInt32 || n < math.MinInt32 {
		*f = 0
		return nil
	}
	*f = flexInt(int(n))
	return nil
}
