package repositoryImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/repository"
	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
	"github.com/er-knight/leetcodedaily/pkg/errs"
	schedtypes "github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

const insertBatchSize = 200

type catalogRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CatalogRepository { return &catalogRepo{db} }

func (r *catalogRepo) UpsertBatch(ctx context.Context, records []types.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	rows := make([]entities.Problem, len(records))
	for i, rec := range records {
		rows[i] = rec.Problem()
	}

	// title, url and last_included are left alone on conflict
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"acceptance_rate", "difficulty"}),
		}).CreateInBatches(&rows, insertBatchSize).Error
	})
	if err != nil {
		return 0, fmt.Errorf("%w: upsert %d problems: %w", errs.ErrStorageUnavailable, len(rows), err)
	}
	return len(rows), nil
}

func (r *catalogRepo) SelectEligible(ctx context.Context, cutoff time.Time, ceilings types.Ceilings) ([]types.Candidate, error) {
	var (
		tiers []string
		args  []any
	)
	for _, d := range entities.Difficulties {
		if c := ceilings[d]; c != nil {
			tiers = append(tiers, "(difficulty = ? AND acceptance_rate < ?)")
			args = append(args, d, *c)
		} else {
			tiers = append(tiers, "difficulty = ?")
			args = append(args, d)
		}
	}

	var out []types.Candidate
	err := r.db.WithContext(ctx).
		Model(&entities.Problem{}).
		Select("id", "difficulty").
		Where("last_included IS NULL OR last_included < ?", cutoff.UTC()).
		Where("("+strings.Join(tiers, " OR ")+")", args...).
		Order("id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: select eligible: %w", errs.ErrStorageUnavailable, err)
	}
	return out, nil
}

func (r *catalogRepo) ApplySchedule(ctx context.Context, run *entities.ScheduleRun, assignments []schedtypes.Assignment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("create run: %w", err)
		}
		if len(assignments) == 0 {
			return nil
		}
		records := make([]entities.InclusionRecord, 0, len(assignments))
		for _, a := range assignments {
			day := a.Day.UTC()
			res := tx.Model(&entities.Problem{}).Where("id = ?", a.ProblemID).Update("last_included", day)
			if res.Error != nil {
				return fmt.Errorf("stamp problem %d: %w", a.ProblemID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("stamp problem %d: %w", a.ProblemID, gorm.ErrRecordNotFound)
			}
			records = append(records, entities.InclusionRecord{ProblemID: a.ProblemID, IncludedAt: day, RunID: run.RunID})
		}
		if err := tx.CreateInBatches(&records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("append inclusion records: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrScheduleCommitFailed, err)
	}
	return nil
}

func (r *catalogRepo) ListProblems(ctx context.Context, difficulty entities.Difficulty, limit int) ([]entities.Problem, error) {
	q := r.db.WithContext(ctx).Model(&entities.Problem{})
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entities.Problem
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list problems: %w", errs.ErrStorageUnavailable, err)
	}
	return out, nil
}

func (r *catalogRepo) ListSchedule(ctx context.Context, from, to time.Time) ([]schedtypes.Entry, error) {
	var out []schedtypes.Entry
	err := r.db.WithContext(ctx).
		Table("problem_dates AS d").
		Select("d.problem_id, d.included_at, d.run_id, p.title, p.url, p.difficulty, p.acceptance_rate").
		Joins("JOIN problems p ON p.id = d.problem_id").
		Where("d.included_at >= ? AND d.included_at < ?", from.UTC(), to.UTC()).
		Order("d.included_at ASC, d.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list schedule: %w", errs.ErrStorageUnavailable, err)
	}
	return out, nil
}
