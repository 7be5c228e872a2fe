package service

import (
	"context"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/catalog/types"
)

// PageSource yields scraped pages in order. ok is false once the source has
// no further pages; page is then empty.
type PageSource interface {
	NextPage(ctx context.Context) (page []types.RawRecord, ok bool, err error)
}

type SyncReport struct {
	Pages    int `json:"pages"`
	Upserted int `json:"upserted"`
	Skipped  int `json:"skipped"`
}

type Synchronizer interface {
	// SyncPage validates one page and upserts its valid records in one batch.
	SyncPage(ctx context.Context, pageNo int, page []types.RawRecord) (upserted, skipped int, err error)
	// SyncAll drains src, one SyncPage per page. It stops at the first error.
	SyncAll(ctx context.Context, src PageSource) (SyncReport, error)
	ListProblems(ctx context.Context, difficulty entities.Difficulty, limit int) ([]entities.Problem, error)
}
