// Command planner syncs the catalog and schedules one month in a single run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/config"
	"github.com/er-knight/leetcodedaily/database"
	catalogRepoImp "github.com/er-knight/leetcodedaily/pkg/catalog/repositoryImp"
	catalogService "github.com/er-knight/leetcodedaily/pkg/catalog/service"
	catalogSvcImp "github.com/er-knight/leetcodedaily/pkg/catalog/serviceImp"
	"github.com/er-knight/leetcodedaily/pkg/export"
	"github.com/er-knight/leetcodedaily/pkg/logger"
	"github.com/er-knight/leetcodedaily/pkg/pipeline"
	schedService "github.com/er-knight/leetcodedaily/pkg/schedule/service"
	schedSvcImp "github.com/er-knight/leetcodedaily/pkg/schedule/serviceImp"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
	"github.com/er-knight/leetcodedaily/pkg/scraper"
)

func main() {
	var (
		year       = flag.Int("year", 0, "target year (default: TARGET_YEAR or next month)")
		month      = flag.Int("month", 0, "target month 1-12")
		skipSync   = flag.Bool("skip-sync", false, "schedule from the stored catalog without scraping")
		importPath = flag.String("import", "", "seed the catalog from an xlsx problem list instead of scraping")
		exportPath = flag.String("export", "", "write the month's schedule to this xlsx file (default: EXPORT_PATH)")
		seed       = flag.Int64("seed", 0, "shuffle seed; 0 seeds from the clock")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *year != 0 || *month != 0 {
		cfg.TargetYear, cfg.TargetMonth = *year, *month
	}
	if *exportPath != "" {
		cfg.ExportPath = *exportPath
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg, lg, *skipSync, *importPath, *seed); err != nil {
		lg.Error("planner failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig, lg *zap.Logger, skipSync bool, importPath string, seed int64) error {
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	target, err := cfg.Month(time.Now())
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	repo := catalogRepoImp.New(db)
	sched, err := schedSvcImp.New(repo, policy, rng, nil, lg)
	if err != nil {
		return err
	}
	runner := pipeline.New(catalogSvcImp.New(repo, lg), sched, lg)

	var src catalogService.PageSource
	switch {
	case importPath != "":
		f, err := os.Open(importPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if src, err = export.OpenSheetSource(f, "", 0); err != nil {
			return err
		}
	case !skipSync:
		if src, err = scraper.New(cfg.Scrape, lg); err != nil {
			return err
		}
	}

	rep, err := runner.Run(ctx, src, target)
	if err != nil {
		return err
	}
	lg.Info("schedule ready",
		zap.String("run_id", rep.RunID),
		zap.String("month", rep.Month),
		zap.Int("eligible", rep.Eligible),
		zap.Int("assigned", len(rep.Assignments)),
		zap.Int("days", rep.NumDays),
	)
	if len(rep.Assignments) < rep.NumDays {
		lg.Warn("schedule has empty days", zap.Int("empty", rep.NumDays-len(rep.Assignments)))
	}

	if cfg.ExportPath != "" {
		if err := writeExport(ctx, sched, target, cfg.ExportPath); err != nil {
			return err
		}
		lg.Info("exported", zap.String("path", cfg.ExportPath))
	}
	return nil
}

func writeExport(ctx context.Context, sched schedService.Scheduler, m types.Month, path string) error {
	entries, err := sched.List(ctx, m)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteMonth(f, m, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
