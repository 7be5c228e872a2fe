package types

import (
	"errors"
	"testing"
	"time"

	"github.com/er-knight/leetcodedaily/entities"
	"github.com/er-knight/leetcodedaily/pkg/errs"
)

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year, month int
		want        int
	}{
		{2024, 8, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, tt := range tests {
		m, err := NewMonth(tt.year, tt.month)
		if err != nil {
			t.Fatalf("NewMonth: %v", err)
		}
		if got := m.Days(); got != tt.want {
			t.Errorf("%s Days() = %d, want %d", m, got, tt.want)
		}
	}
}

func TestMonthStartIsUTC(t *testing.T) {
	m, _ := NewMonth(2024, 8)
	start := m.Start()
	if start.Location() != time.UTC {
		t.Fatalf("location = %v, want UTC", start.Location())
	}
	if !start.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() = %v", start)
	}
	if got := m.Day(14); !got.Equal(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Day(14) = %v", got)
	}
}

func TestNewMonthRejectsOutOfRange(t *testing.T) {
	for _, mo := range []int{0, 13} {
		if _, err := NewMonth(2024, mo); !errors.Is(err, errs.ErrInvalidMonth) {
			t.Errorf("NewMonth(2024, %d) err = %v", mo, err)
		}
	}
}

func TestNextMonth(t *testing.T) {
	got := NextMonth(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC))
	if got.Year != 2025 || got.Month != time.January {
		t.Errorf("NextMonth = %s, want 2025-01", got)
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}

	p := DefaultPolicy()
	p.RoundingSink = "Nightmare"
	if err := p.Validate(); !errors.Is(err, errs.ErrInvalidPolicy) {
		t.Errorf("bad sink err = %v", err)
	}

	p = DefaultPolicy()
	bad := 120.0
	p.Ceilings[entities.Easy] = &bad
	if err := p.Validate(); !errors.Is(err, errs.ErrInvalidPolicy) {
		t.Errorf("bad ceiling err = %v", err)
	}
}

func TestQuotasSumInTierOrder(t *testing.T) {
	q := Quotas{entities.Easy: 28.0 / 6, entities.Medium: 28.0 / 6, entities.Hard: 28.0 * 4 / 6}
	want := (q[entities.Easy] + q[entities.Medium]) + q[entities.Hard]
	for i := 0; i < 50; i++ {
		if got := q.Sum(); got != want {
			t.Fatalf("Sum = %v, want %v", got, want)
		}
	}
}
