package database

import (
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/er-knight/leetcodedaily/entities"
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, table := range []string{"problems", "problem_dates", "schedule_runs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestOpenUpgradesLegacyTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE problems (id INTEGER PRIMARY KEY, title VARCHAR(256), url VARCHAR(256), acceptance_rate FLOAT, difficulty VARCHAR(8), last_included DATETIME)`,
		`CREATE TABLE problem_dates (id INTEGER PRIMARY KEY AUTOINCREMENT, problem_id INTEGER, included_at DATETIME)`,
		`INSERT INTO problems VALUES (1, 'Two Sum', 'https://leetcode.com/problems/two-sum', 49.1, 'Easy', '2024-08-03 00:00:00.000000')`,
		`INSERT INTO problems VALUES (2, 'Add Two Numbers', 'https://leetcode.com/problems/add-two-numbers', 41.0, 'Medium', NULL)`,
		`INSERT INTO problem_dates (problem_id, included_at) VALUES (1, '2024-08-03 00:00:00.000000')`,
	} {
		if err := legacy.Exec(stmt).Error; err != nil {
			t.Fatalf("seed legacy: %v", err)
		}
	}
	sqlDB, _ := legacy.DB()
	_ = sqlDB.Close()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var raw string
	if err := db.Raw(`SELECT last_included || '' FROM problems WHERE id = 1`).Scan(&raw).Error; err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if raw != "2024-08-03 00:00:00.000000+00:00" {
		t.Errorf("last_included = %q, want UTC suffix", raw)
	}

	var p entities.Problem
	if err := db.First(&p, 1).Error; err != nil {
		t.Fatalf("load problem: %v", err)
	}
	want := time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC)
	if p.LastIncluded == nil || !p.LastIncluded.Equal(want) {
		t.Errorf("LastIncluded = %v, want %v", p.LastIncluded, want)
	}

	var untouched entities.Problem
	if err := db.First(&untouched, 2).Error; err != nil {
		t.Fatalf("load problem 2: %v", err)
	}
	if untouched.LastIncluded != nil {
		t.Errorf("null last_included became %v", untouched.LastIncluded)
	}

	if !db.Migrator().HasColumn(&entities.InclusionRecord{}, "run_id") {
		t.Error("run_id column not added to legacy problem_dates")
	}

	// a second open must not append the suffix twice
	sqlDB, _ = db.DB()
	_ = sqlDB.Close()
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := db.Raw(`SELECT included_at || '' FROM problem_dates WHERE problem_id = 1`).Scan(&raw).Error; err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if raw != "2024-08-03 00:00:00.000000+00:00" {
		t.Errorf("included_at = %q after reopen", raw)
	}
}
