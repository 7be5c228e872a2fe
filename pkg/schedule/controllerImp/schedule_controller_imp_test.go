package controllerImp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/er-knight/leetcodedaily/database"
	"github.com/er-knight/leetcodedaily/entities"
	catalogrepo "github.com/er-knight/leetcodedaily/pkg/catalog/repositoryImp"
	catalogservice "github.com/er-knight/leetcodedaily/pkg/catalog/service"
	catalogserviceImp "github.com/er-knight/leetcodedaily/pkg/catalog/serviceImp"
	"github.com/er-knight/leetcodedaily/pkg/pipeline"
	schedserviceImp "github.com/er-knight/leetcodedaily/pkg/schedule/serviceImp"
	"github.com/er-knight/leetcodedaily/pkg/schedule/types"
)

var now = func() time.Time { return time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC) }

func setup(t *testing.T) (*gorm.DB, *echo.Echo, *SchedCtrl) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "ctrl.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := catalogrepo.New(db)
	sched, err := schedserviceImp.New(repo, types.DefaultPolicy(), rand.New(rand.NewSource(8)), now, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.New(catalogserviceImp.New(repo, zap.NewNop()), sched, zap.NewNop())
	noSource := func() (catalogservice.PageSource, error) { return nil, fmt.Errorf("no source in tests") }

	h := New(runner, sched, noSource, now)
	e := echo.New()
	e.POST("/schedule", h.Generate)
	e.GET("/schedule", h.List)
	e.GET("/schedule/export", h.Export)
	return db, e, h
}

func seedProblems(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for id := 1; id <= n; id++ {
		d := []entities.Difficulty{entities.Easy, entities.Medium, entities.Hard}[id%3]
		p := entities.Problem{ID: id, Title: fmt.Sprintf("Problem %d", id), URL: fmt.Sprintf("https://leetcode.com/problems/p%d", id), AcceptanceRate: 20, Difficulty: d}
		if err := db.Create(&p).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGenerateCalendar(t *testing.T) {
	db, e, _ := setup(t)
	seedProblems(t, db, 60)

	rec := do(e, http.MethodPost, "/schedule?format=calendar", `{"year":2024,"month":8}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		RunID    string                       `json:"run_id"`
		Month    string                       `json:"month"`
		Calendar map[string][]json.RawMessage `json:"calendar"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.RunID == "" || body.Month != "2024-08" {
		t.Errorf("body = %s", rec.Body)
	}
	if len(body.Calendar) != 31 {
		t.Errorf("calendar days = %d, want 31", len(body.Calendar))
	}
	for day, items := range body.Calendar {
		if !strings.HasPrefix(day, "2024-08-") || len(items) != 1 {
			t.Errorf("day %s has %d items", day, len(items))
		}
	}

	rec = do(e, http.MethodGet, "/schedule?year=2024&month=8", "")
	var entries []types.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || len(entries) != 31 {
		t.Errorf("list status=%d entries=%d", rec.Code, len(entries))
	}
}

func TestGenerateDefaultsToNextMonth(t *testing.T) {
	db, e, _ := setup(t)
	seedProblems(t, db, 3)

	rec := do(e, http.MethodPost, "/schedule", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var rep pipeline.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Month != "2024-08" || len(rep.Assignments) != 3 || rep.Final() != pipeline.Committed {
		t.Errorf("report = %+v", rep)
	}
}

func TestGenerateWithoutCandidates(t *testing.T) {
	_, e, _ := setup(t)
	rec := do(e, http.MethodPost, "/schedule", `{"year":2024,"month":8}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d: %s", rec.Code, rec.Body)
	}
}

func TestGenerateSourceError(t *testing.T) {
	_, e, _ := setup(t)
	rec := do(e, http.MethodPost, "/schedule", `{"year":2024,"month":8,"sync":true}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestBadMonth(t *testing.T) {
	_, e, _ := setup(t)
	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/schedule", `{"year":2024,"month":13}`},
		{http.MethodGet, "/schedule?year=2024&month=x", ""},
		{http.MethodGet, "/schedule/export?year=2024", ""},
	} {
		if rec := do(e, tc.method, tc.target, tc.body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s: status = %d", tc.method, tc.target, rec.Code)
		}
	}
}

func TestExport(t *testing.T) {
	db, e, _ := setup(t)
	seedProblems(t, db, 5)
	if rec := do(e, http.MethodPost, "/schedule", `{"year":2024,"month":8}`); rec.Code != http.StatusCreated {
		t.Fatalf("generate: %d %s", rec.Code, rec.Body)
	}

	rec := do(e, http.MethodGet, "/schedule/export?year=2024&month=8", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != xlsxMIME {
		t.Errorf("content-type = %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "schedule-2024-08.xlsx") {
		t.Errorf("content-disposition = %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows("2024-08")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Errorf("rows = %d, want header + 5", len(rows))
	}
}
