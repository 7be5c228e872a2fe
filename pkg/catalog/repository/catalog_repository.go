package repository

import (
	"context"
	"time"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
	schedtypes "github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

// CatalogRepository is the persistent problem catalog plus its inclusion history.
type CatalogRepository interface {
	// UpsertBatch inserts new problems and refreshes acceptance rate and
	// difficulty of known ones. All or nothing.
	UpsertBatch(ctx context.Context, records []types.Record) (int, error)
	// SelectEligible returns problems off cooldown (never included, or last
	// included before cutoff) whose acceptance rate is under their tier's ceiling.
	SelectEligible(ctx context.Context, cutoff time.Time, ceilings types.Ceilings) ([]types.Candidate, error)
	// ApplySchedule stamps last_included and appends one inclusion record per
	// assignment, together with the run row. All or nothing.
	ApplySchedule(ctx context.Context, run *entities.ScheduleRun, assignments []schedtypes.Assignment) error

	ListProblems(ctx context.Context, difficulty entities.Difficulty, limit int) ([]entities.Problem, error)
	ListSchedule(ctx context.Context, from, to time.Time) ([]schedtypes.Entry, error)
}
