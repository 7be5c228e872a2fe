// Package pipeline runs one scheduling pass end to end:
// Idle -> Syncing -> Filtering -> Allocating -> Assigning -> Committed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/entities"
	catalogservice "github.com/er-knight/leetcodedaily/pkg/catalog/service"
	schedservice "github.com/er-knight/leetcodedaily/pkg/schedule/service"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

type State string

const (
	Idle       State = "Idle"
	Syncing    State = "Syncing"
	Filtering  State = "Filtering"
	Allocating State = "Allocating"
	Assigning  State = "Assigning"
	Committed  State = "Committed"
	Failed     State = "Failed"
)

// ErrBusy is returned when a run is requested while another is in progress.
var ErrBusy = errors.New("a scheduling run is already in progress")

type Report struct {
	RunID       string                      `json:"run_id,omitempty"`
	Month       string                      `json:"month"`
	NumDays     int                         `json:"num_days"`
	Sync        *catalogservice.SyncReport  `json:"sync,omitempty"`
	Eligible    int                         `json:"eligible"`
	Frequency   map[entities.Difficulty]int `json:"frequency,omitempty"`
	Quotas      types.Quotas                `json:"quotas,omitempty"`
	Assignments []types.Assignment          `json:"assignments,omitempty"`
	States      []State                     `json:"states"`
}

// Final is the last state the run reached.
func (r Report) Final() State {
	if len(r.States) == 0 {
		return Idle
	}
	return r.States[len(r.States)-1]
}

type Runner struct {
	syncer catalogservice.Synchronizer
	sched  schedservice.Scheduler
	log    *zap.Logger

	mu sync.Mutex
}

func New(syncer catalogservice.Synchronizer, sched schedservice.Scheduler, log *zap.Logger) *Runner {
	return &Runner{syncer: syncer, sched: sched, log: log.Named("pipeline")}
}

// Run executes one pass for month. A nil src skips the Syncing step and
// schedules from the catalog as stored. Nothing is written to the schedule
// unless the run reaches Committed.
func (r *Runner) Run(ctx context.Context, src catalogservice.PageSource, month types.Month) (Report, error) {
	if !r.mu.TryLock() {
		return Report{Month: month.String()}, ErrBusy
	}
	defer r.mu.Unlock()

	rep := Report{Month: month.String(), NumDays: month.Days(), States: []State{Idle}}
	enter := func(s State) {
		rep.States = append(rep.States, s)
		r.log.Debug("state", zap.String("state", string(s)), zap.Stringer("month", month))
	}
	fail := func(step string, err error) (Report, error) {
		enter(Failed)
		r.log.Error("scheduling run failed", zap.String("step", step), zap.Stringer("month", month), zap.Error(err))
		return rep, fmt.Errorf("%s: %w", step, err)
	}

	if src != nil {
		enter(Syncing)
		sr, err := r.syncer.SyncAll(ctx, src)
		rep.Sync = &sr
		if err != nil {
			return fail("sync", err)
		}
	}

	enter(Filtering)
	pool, err := r.sched.Eligible(ctx)
	if err != nil {
		return fail("filter", err)
	}
	rep.Eligible = len(pool)

	enter(Allocating)
	freq, quotas, err := r.sched.Allocate(rep.NumDays, pool)
	rep.Frequency = freq
	if err != nil {
		return fail("allocate", err)
	}
	rep.Quotas = quotas

	enter(Assigning)
	assignments := r.sched.Assign(month, rep.NumDays, pool, quotas)
	run, err := r.sched.Commit(ctx, month, rep.NumDays, assignments)
	if err != nil {
		return fail("commit", err)
	}
	rep.Assignments = assignments
	rep.RunID = run.RunID

	enter(Committed)
	r.log.Info("scheduling run committed",
		zap.String("run_id", run.RunID),
		zap.Stringer("month", month),
		zap.Int("eligible", rep.Eligible),
		zap.Int("assigned", len(assignments)),
	)
	return rep, nil
}
