package types

import (
	"fmt"
	"time"

	"github.com/er-knight/leetcodedaily/entities"
	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/errs"
)

// Month is a target calendar month, always interpreted in UTC.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		return Month{}, fmt.Errorf("%w: %04d-%02d", errs.ErrInvalidMonth, year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// NextMonth returns the calendar month after the one containing t.
func NextMonth(t time.Time) Month {
	first := time.Date(t.UTC().Year(), t.UTC().Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: first.Year(), Month: first.Month()}
}

// Start is midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is midnight UTC on the first day of the following month.
func (m Month) End() time.Time { return m.Start().AddDate(0, 1, 0) }

func (m Month) Days() int {
	return int(m.End().Sub(m.Start()).Hours() / 24)
}

// Day returns month start plus offset days.
func (m Month) Day(offset int) time.Time { return m.Start().AddDate(0, 0, offset) }

func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)) }

// Policy carries the tunable scheduling constants.
type Policy struct {
	Cooldown     time.Duration
	Ceilings     catalogtypes.Ceilings
	RoundingSink entities.Difficulty
}

func DefaultPolicy() Policy {
	easy, medium := 30.0, 60.0
	return Policy{
		Cooldown: 90 * 24 * time.Hour,
		Ceilings: catalogtypes.Ceilings{
			entities.Easy:   &easy,
			entities.Medium: &medium,
			entities.Hard:   nil,
		},
		RoundingSink: entities.Medium,
	}
}

func (p Policy) Validate() error {
	if p.Cooldown < 0 {
		return fmt.Errorf("%w: negative cooldown %s", errs.ErrInvalidPolicy, p.Cooldown)
	}
	if _, err := catalogtypes.ParseDifficulty(string(p.RoundingSink)); err != nil {
		return fmt.Errorf("%w: rounding sink: %w", errs.ErrInvalidPolicy, err)
	}
	for d, c := range p.Ceilings {
		if _, err := catalogtypes.ParseDifficulty(string(d)); err != nil {
			return fmt.Errorf("%w: ceiling: %w", errs.ErrInvalidPolicy, err)
		}
		if c != nil && (*c < 0 || *c > 100) {
			return fmt.Errorf("%w: %s ceiling %v out of range", errs.ErrInvalidPolicy, d, *c)
		}
	}
	return nil
}

// Quotas is the real-valued day budget per tier. Missing tiers read as 0.
type Quotas map[entities.Difficulty]float64

// Sum adds the tiers in entities.Difficulties order so the float result does
// not depend on map iteration.
func (q Quotas) Sum() float64 {
	var s float64
	for _, d := range entities.Difficulties {
		s += q[d]
	}
	return s
}

func (q Quotas) Clone() Quotas {
	out := make(Quotas, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Assignment places one problem on one day.
type Assignment struct {
	ProblemID  int                 `json:"problem_id"`
	Difficulty entities.Difficulty `json:"difficulty"`
	Day        time.Time           `json:"day"`
}

// Entry is a stored inclusion joined with its problem, for reporting.
type Entry struct {
	ProblemID      int                 `json:"problem_id"`
	IncludedAt     time.Time           `json:"included_at"`
	RunID          string              `json:"run_id"`
	Title          string              `json:"title"`
	URL            string              `json:"url"`
	Difficulty     entities.Difficulty `json:"difficulty"`
	AcceptanceRate float64             `json:"acceptance_rate"`
}
