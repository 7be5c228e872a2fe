package serviceImp

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/repository"
	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/schedule/engine"
	"github.com/er-knight/leetcodedaily/pkg/schedule/service"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

type schedSvc struct {
	r      repository.CatalogRepository
	policy types.Policy
	now    func() time.Time
	log    *zap.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New builds the scheduler. A nil rng is seeded from the clock; a nil now
// defaults to time.Now.
func New(r repository.CatalogRepository, policy types.Policy, rng *rand.Rand, now func() time.Time, log *zap.Logger) (service.Scheduler, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &schedSvc{r: r, policy: policy, now: now, log: log.Named("schedule"), rng: rng}, nil
}

func (s *schedSvc) Policy() types.Policy { return s.policy }

func (s *schedSvc) Eligible(ctx context.Context) ([]catalogtypes.Candidate, error) {
	cutoff := engine.Cutoff(s.now(), s.policy.Cooldown)
	pool, err := s.r.SelectEligible(ctx, cutoff, s.policy.Ceilings)
	if err != nil {
		return nil, err
	}
	s.log.Info("eligible problems", zap.Time("cutoff", cutoff), zap.Int("count", len(pool)))
	return pool, nil
}

func (s *schedSvc) Allocate(numDays int, pool []catalogtypes.Candidate) (map[entities.Difficulty]int, types.Quotas, error) {
	freq := engine.Frequency(pool)
	q, err := engine.Allocate(numDays, freq, s.policy.RoundingSink)
	if err != nil {
		return freq, nil, err
	}
	s.log.Debug("quotas",
		zap.Int("days", numDays),
		zap.Float64("easy", q[entities.Easy]),
		zap.Float64("medium", q[entities.Medium]),
		zap.Float64("hard", q[entities.Hard]),
	)
	return freq, q, nil
}

func (s *schedSvc) Assign(month types.Month, numDays int, pool []catalogtypes.Candidate, quotas types.Quotas) []types.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Assign(pool, quotas, month.Start(), numDays, s.rng)
}

func (s *schedSvc) Commit(ctx context.Context, month types.Month, numDays int, assignments []types.Assignment) (*entities.ScheduleRun, error) {
	run := &entities.ScheduleRun{
		RunID:     uuid.NewString(),
		Year:      month.Year,
		Month:     int(month.Month),
		NumDays:   numDays,
		Assigned:  len(assignments),
		CreatedAt: s.now().UTC(),
	}
	if err := s.r.ApplySchedule(ctx, run, assignments); err != nil {
		s.log.Error("schedule commit failed", zap.String("run_id", run.RunID), zap.Stringer("month", month), zap.Error(err))
		return nil, err
	}
	s.log.Info("schedule committed",
		zap.String("run_id", run.RunID),
		zap.Stringer("month", month),
		zap.Int("assigned", run.Assigned),
		zap.Int("days", numDays),
	)
	return run, nil
}

func (s *schedSvc) List(ctx context.Context, month types.Month) ([]types.Entry, error) {
	return s.r.ListSchedule(ctx, month.Start(), month.End())
}
