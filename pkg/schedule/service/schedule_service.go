package service

import (
	"context"

	"github.com/er-knight/leetcodedaily/entities"
	catalogtypes "github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

type Scheduler interface {
	Policy() types.Policy
	// Eligible returns the problems off cooldown and under their tier ceiling.
	Eligible(ctx context.Context) ([]catalogtypes.Candidate, error)
	// Allocate returns the per-tier frequency of pool and the day quotas for numDays.
	Allocate(numDays int, pool []catalogtypes.Candidate) (map[entities.Difficulty]int, types.Quotas, error)
	Assign(month types.Month, numDays int, pool []catalogtypes.Candidate, quotas types.Quotas) []types.Assignment
	// Commit persists assignments under a new run. Nothing is written on error.
	Commit(ctx context.Context, month types.Month, numDays int, assignments []types.Assignment) (*entities.ScheduleRun, error)
	List(ctx context.Context, month types.Month) ([]types.Entry, error)
}
