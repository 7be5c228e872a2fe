package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/repository"
	"github.com/er-knight/leetcodedaily/pkg/catalog/service"
	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
)

type syncSvc struct {
	r   repository.CatalogRepository
	log *zap.Logger
}

func New(r repository.CatalogRepository, log *zap.Logger) service.Synchronizer {
	return &syncSvc{r: r, log: log.Named("catalog")}
}

func (s *syncSvc) SyncPage(ctx context.Context, pageNo int, page []types.RawRecord) (int, int, error) {
	valid := make([]types.Record, 0, len(page))
	skipped := 0
	for i, raw := range page {
		rec, err := types.ParseRecord(raw)
		if err != nil {
			skipped++
			s.log.Warn("skip malformed record",
				zap.Int("page", pageNo),
				zap.Int("row", i),
				zap.String("id", raw.ID),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, rec)
	}

	n, err := s.r.UpsertBatch(ctx, valid)
	if err != nil {
		return 0, skipped, fmt.Errorf("page %d: %w", pageNo, err)
	}
	s.log.Debug("page synced", zap.Int("page", pageNo), zap.Int("upserted", n), zap.Int("skipped", skipped))
	return n, skipped, nil
}

func (s *syncSvc) SyncAll(ctx context.Context, src service.PageSource) (service.SyncReport, error) {
	var rep service.SyncReport
	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		page, ok, err := src.NextPage(ctx)
		if err != nil {
			return rep, fmt.Errorf("fetch page %d: %w", rep.Pages+1, err)
		}
		if !ok {
			break
		}
		n, skipped, err := s.SyncPage(ctx, rep.Pages+1, page)
		rep.Skipped += skipped
		if err != nil {
			return rep, err
		}
		rep.Pages++
		rep.Upserted += n
	}
	s.log.Info("catalog synced",
		zap.Int("pages", rep.Pages),
		zap.Int("upserted", rep.Upserted),
		zap.Int("skipped", rep.Skipped),
	)
	return rep, nil
}

func (s *syncSvc) ListProblems(ctx context.Context, difficulty entities.Difficulty, limit int) ([]entities.Problem, error) {
	return s.r.ListProblems(ctx, difficulty, limit)
}
