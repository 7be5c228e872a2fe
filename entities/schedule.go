package entities

import "time"

// InclusionRecord is the append-only audit row written once per scheduled problem.
type InclusionRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProblemID  int       `gorm:"index" json:"problem_id"`
	IncludedAt time.Time `gorm:"index" json:"included_at"`
	RunID      string    `gorm:"size:36;index" json:"run_id"`
}

func (InclusionRecord) TableName() string { return "problem_dates" }

type ScheduleRun struct {
	RunID     string    `gorm:"primaryKey;size:36" json:"run_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	NumDays   int       `json:"num_days"`
	Assigned  int       `json:"assigned"`
	CreatedAt time.Time `json:"created_at"`
}
