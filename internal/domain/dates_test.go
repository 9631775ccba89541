package domain_test

import (
	"testing"

	"github.com/yubarajDas/payguard-motia/internal/domain"
)

func TestDaysDifference(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"same day", "2025-12-25", "2025-12-25", 0},
		{"one day forward", "2025-12-24", "2025-12-25", 1},
		{"one day backward", "2025-12-25", "2025-12-24", -1},
		{"across month boundary", "2025-11-28", "2025-12-03", 5},
		{"across year boundary", "2025-12-30", "2026-01-02", 3},
		{"leap february", "2024-02-28", "2024-03-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.DaysDifference(tt.from, tt.to); got != tt.want {
				t.Errorf("DaysDifference(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	tests := []struct {
		name    string
		dueDate string
		today   string
		want    int
	}{
		{"due today", "2025-12-25", "2025-12-25", 0},
		{"due in the future", "2025-12-25", "2025-12-20", 0},
		{"five days overdue", "2025-12-20", "2025-12-25", 5},
		{"one day overdue", "2025-12-24", "2025-12-25", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.DaysOverdue(tt.dueDate, tt.today); got != tt.want {
				t.Errorf("DaysOverdue(%s, %s) = %d, want %d", tt.dueDate, tt.today, got, tt.want)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1999-12-31"}
	for _, d := range valid {
		if !domain.IsValidDate(d) {
			t.Errorf("expected %s to be valid", d)
		}
	}

	invalid := []string{"", "2025-13-01", "2025-02-30", "25-01-01", "2025/01/01", "not-a-date"}
	for _, d := range invalid {
		if domain.IsValidDate(d) {
			t.Errorf("expected %s to be invalid", d)
		}
	}
}
