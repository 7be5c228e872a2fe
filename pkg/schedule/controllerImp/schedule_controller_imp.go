package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	catalogservice "github.com/er-knight/leetcodedaily/pkg/catalog/service"
	"github.com/er-knight/leetcodedaily/pkg/errs"
	"github.com/er-knight/leetcodedaily/pkg/export"
	"github.com/er-knight/leetcodedaily/pkg/pipeline"
	"github.com/er-knight/leetcodedaily/pkg/schedule/service"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SchedCtrl struct {
	runner    *pipeline.Runner
	sched     service.Scheduler
	newSource func() (catalogservice.PageSource, error)
	now       func() time.Time
}

func New(runner *pipeline.Runner, sched service.Scheduler, newSource func() (catalogservice.PageSource, error), now func() time.Time) *SchedCtrl {
	if now == nil {
		now = time.Now
	}
	return &SchedCtrl{runner: runner, sched: sched, newSource: newSource, now: now}
}

type calItem struct {
	ProblemID      int     `json:"problem_id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Difficulty     string  `json:"difficulty"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	RunID          string  `json:"run_id"`
}

// calendar groups entries as "YYYY-MM-DD" -> items.
func calendar(entries []types.Entry) map[string][]calItem {
	cal := map[string][]calItem{}
	for _, e := range entries {
		ds := e.IncludedAt.UTC().Format("2006-01-02")
		cal[ds] = append(cal[ds], calItem{
			ProblemID: e.ProblemID, Title: e.Title, URL: e.URL,
			Difficulty: string(e.Difficulty), AcceptanceRate: e.AcceptanceRate, RunID: e.RunID,
		})
	}
	return cal
}

// month reads year/month, defaulting to the calendar month after now.
func (h *SchedCtrl) month(year, month string) (types.Month, error) {
	if year == "" && month == "" {
		return types.NextMonth(h.now()), nil
	}
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	if err1 != nil || err2 != nil {
		return types.Month{}, fmt.Errorf("%w: year=%q month=%q", errs.ErrInvalidMonth, year, month)
	}
	return types.NewMonth(y, m)
}

func (h *SchedCtrl) Generate(c echo.Context) error {
	var body struct {
		Year  int  `json:"year"`
		Month int  `json:"month"`
		Sync  bool `json:"sync"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var (
		m   types.Month
		err error
	)
	if body.Year == 0 && body.Month == 0 {
		m = types.NextMonth(h.now())
	} else if m, err = types.NewMonth(body.Year, body.Month); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var src catalogservice.PageSource
	if body.Sync {
		if src, err = h.newSource(); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	rep, err := h.runner.Run(c.Request().Context(), src, m)
	if err != nil {
		status := errs.HTTPStatus(err)
		if errors.Is(err, pipeline.ErrBusy) {
			status = http.StatusConflict
		}
		return c.JSON(status, map[string]any{"error": err.Error(), "states": rep.States})
	}

	if c.QueryParam("format") == "calendar" {
		entries, err := h.sched.List(c.Request().Context(), m)
		if err != nil {
			return c.JSON(errs.HTTPStatus(err), map[string]string{"error": err.Error()})
		}
		mine := entries[:0]
		for _, e := range entries {
			if e.RunID == rep.RunID {
				mine = append(mine, e)
			}
		}
		return c.JSON(http.StatusCreated, map[string]any{
			"run_id":   rep.RunID,
			"month":    rep.Month,
			"quotas":   rep.Quotas,
			"calendar": calendar(mine),
		})
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *SchedCtrl) List(c echo.Context) error {
	m, err := h.month(c.QueryParam("year"), c.QueryParam("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	entries, err := h.sched.List(c.Request().Context(), m)
	if err != nil {
		return c.JSON(errs.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	if c.QueryParam("format") == "calendar" {
		return c.JSON(http.StatusOK, map[string]any{"month": m.String(), "calendar": calendar(entries)})
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *SchedCtrl) Export(c echo.Context) error {
	m, err := h.month(c.QueryParam("year"), c.QueryParam("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	entries, err := h.sched.List(c.Request().Context(), m)
	if err != nil {
		return c.JSON(errs.HTTPStatus(err), map[string]string{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := export.WriteMonth(&buf, m, entries); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="schedule-%s.xlsx"`, m))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
