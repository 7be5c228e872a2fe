package controllerImp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/er-knight/leetcodedaily/entities"
)

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db, started: time.Now()} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the database and reports catalog size and the latest run.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks":     map[string]any{"database": db},
		"time":       time.Now().UTC().Format(time.RFC3339),
	}
	if !db.OK {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	var problems int64
	if err := h.db.WithContext(ctx).Model(&entities.Problem{}).Count(&problems).Error; err == nil {
		resp["problems"] = problems
	}
	var last entities.ScheduleRun
	err := h.db.WithContext(ctx).Order("created_at DESC").Take(&last).Error
	switch {
	case err == nil:
		resp["last_run"] = last
	case !errors.Is(err, gorm.ErrRecordNotFound):
		resp["last_run_err"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
