package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/errs"
)

// RawRecord is one problem row as scraped, before any parsing.
type RawRecord struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	AcceptanceRate string `json:"acceptance_rate"` // "49.1%"
	Difficulty     string `json:"difficulty"`
}

// Record is a validated problem observation ready for upsert.
type Record struct {
	ID             int
	Title          string
	URL            string
	AcceptanceRate float64
	Difficulty     entities.Difficulty
}

func (r Record) Problem() entities.Problem {
	return entities.Problem{
		ID:             r.ID,
		Title:          r.Title,
		URL:            r.URL,
		AcceptanceRate: r.AcceptanceRate,
		Difficulty:     r.Difficulty,
	}
}

// Candidate is an eligible (id, difficulty) pair.
type Candidate struct {
	ID         int                 `json:"id"`
	Difficulty entities.Difficulty `json:"difficulty"`
}

// Ceilings caps the acceptance rate per tier. A nil or missing ceiling admits
// every problem of that tier.
type Ceilings map[entities.Difficulty]*float64

func (c Ceilings) Admits(d entities.Difficulty, rate float64) bool {
	ceiling := c[d]
	return ceiling == nil || rate < *ceiling
}

func ParseDifficulty(s string) (entities.Difficulty, error) {
	for _, d := range entities.Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ParseID accepts "12", "12." and surrounding whitespace.
func ParseID(s string) (int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id %d: must be positive", id)
	}
	return id, nil
}

// ParseAcceptance accepts "49.1%" or "49.1" and requires a value in [0, 100].
func ParseAcceptance(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("acceptance %q: %w", s, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("acceptance %v: out of range", v)
	}
	return v, nil
}

// ParseRecord validates a raw record. Errors wrap errs.ErrMalformedSource.
func ParseRecord(raw RawRecord) (Record, error) {
	id, err := ParseID(raw.ID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", errs.ErrMalformedSource, err)
	}
	rate, err := ParseAcceptance(raw.AcceptanceRate)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", errs.ErrMalformedSource, err)
	}
	d, err := ParseDifficulty(raw.Difficulty)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", errs.ErrMalformedSource, err)
	}
	return Record{
		ID:             id,
		Title:          strings.TrimSpace(raw.Title),
		URL:            strings.TrimSpace(raw.URL),
		AcceptanceRate: rate,
		Difficulty:     d,
	}, nil
}
