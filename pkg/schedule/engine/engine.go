// Package engine holds the pure scheduling steps: cooldown cutoff, tier
// frequency, proportional day allocation and day assignment.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/er-knight/leetcodedaily/entities"
	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/errs"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

// Cutoff is the instant before which a problem's last inclusion has to lie
// for it to be eligible again.
func Cutoff(now time.Time, cooldown time.Duration) time.Time {
	return now.UTC().Add(-cooldown)
}

// Frequency counts eligible problems per tier. Tiers with no candidates are
// absent from the result.
func Frequency(pool []catalogtypes.Candidate) map[entities.Difficulty]int {
	freq := make(map[entities.Difficulty]int)
	for _, c := range pool {
		freq[c.Difficulty]++
	}
	return freq
}

// Allocate splits numDays across tiers in proportion to freq. Quotas stay
// real-valued. The remainder num_days - sum(quotas) goes to sink whether or
// not sink has any candidates.
func Allocate(numDays int, freq map[entities.Difficulty]int, sink entities.Difficulty) (types.Quotas, error) {
	total := 0
	for _, n := range freq {
		total += n
	}
	if total == 0 {
		return nil, errs.ErrInsufficientCandidates
	}
	if numDays <= 0 {
		return nil, fmt.Errorf("%w: %d days", errs.ErrInvalidMonth, numDays)
	}

	q := make(types.Quotas, len(entities.Difficulties))
	for _, d := range entities.Difficulties {
		q[d] = 0
	}
	for d, n := range freq {
		if n > 0 {
			q[d] = float64(numDays) * float64(n) / float64(total)
		}
	}
	delta := float64(numDays) - q.Sum()
	q[sink] += delta
	return q, nil
}

// Assign shuffles a copy of pool with rng and walks it once, placing a
// candidate on the next free day while its tier still has quota left.
// It stops when numDays days are filled or the pool is exhausted.
func Assign(pool []catalogtypes.Candidate, quotas types.Quotas, start time.Time, numDays int, rng *rand.Rand) []types.Assignment {
	shuffled := make([]catalogtypes.Candidate, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	left := quotas.Clone()
	start = start.UTC()
	out := make([]types.Assignment, 0, min(numDays, len(shuffled)))
	day := 0
	for _, c := range shuffled {
		if day == numDays {
			break
		}
		if left[c.Difficulty] <= 0 {
			continue
		}
		out = append(out, types.Assignment{
			ProblemID:  c.ID,
			Difficulty: c.Difficulty,
			Day:        start.AddDate(0, 0, day),
		})
		left[c.Difficulty]--
		day++
	}
	return out
}
