package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/er-knight/leetcodedaily/config"
	"github.com/er-knight/leetcodedaily/database"
	"github.com/er-knight/leetcodedaily/pkg/logger"
	"github.com/er-knight/leetcodedaily/pkg/pipeline"
	"github.com/er-knight/leetcodedaily/pkg/scraper"
	"github.com/er-knight/leetcodedaily/router"

	// Catalog
	catalogCtrlImp "github.com/er-knight/leetcodedaily/pkg/catalog/controllerImp"
	catalogRepoImp "github.com/er-knight/leetcodedaily/pkg/catalog/repositoryImp"
	catalogService "github.com/er-knight/leetcodedaily/pkg/catalog/service"
	catalogSvcImp "github.com/er-knight/leetcodedaily/pkg/catalog/serviceImp"

	// Schedule
	schedCtrlImp "github.com/er-knight/leetcodedaily/pkg/schedule/controllerImp"
	schedSvcImp "github.com/er-knight/leetcodedaily/pkg/schedule/serviceImp"

	// Health
	healthCtrlImp "github.com/er-knight/leetcodedaily/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	policy, err := cfg.Policy()
	if err != nil {
		lg.Fatal("policy", zap.Error(err))
	}

	// 2) DB (sqlite) + migrations
	db := database.OpenSQLite(cfg.DBPath, lg)

	// 3) Services
	repo := catalogRepoImp.New(db)
	syncer := catalogSvcImp.New(repo, lg)
	sched, err := schedSvcImp.New(repo, policy, nil, nil, lg)
	if err != nil {
		lg.Fatal("scheduler", zap.Error(err))
	}
	runner := pipeline.New(syncer, sched, lg)
	newSource := func() (catalogService.PageSource, error) {
		src, err := scraper.New(cfg.Scrape, lg)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	// 4) Controllers + routes
	e := router.New(
		echo.New(),
		lg,
		cfg.AdminToken,
		catalogCtrlImp.New(syncer, newSource),
		schedCtrlImp.New(runner, sched, newSource, nil),
		healthCtrlImp.NewHealthCtrl(db),
	)

	// 5) Start
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		lg.Info("listening", zap.String("port", cfg.Port), zap.String("db", cfg.DBPath))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
