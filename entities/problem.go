package entities

import "time"

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the tiers in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

type Problem struct {
	ID             int        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title          string     `gorm:"type:varchar(256)" json:"title"`
	URL            string     `gorm:"column:url;type:varchar(256)" json:"url"`
	AcceptanceRate float64    `gorm:"type:float" json:"acceptance_rate"`
	Difficulty     Difficulty `gorm:"type:varchar(8);index" json:"difficulty"`
	LastIncluded   *time.Time `json:"last_included"` // nil = never scheduled
}

func (Problem) TableName() string { return "problems" }
