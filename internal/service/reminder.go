package service

import (
	"time"

	"github.com/yubarajDas/payguard-motia/internal/domain"
)

// Reminder policy evaluation. Three independent rules, each a pure function
// of (bill, policy, currentDate): no clock reads, no state access. The scan
// and schedule endpoints thread the current date in explicitly.

// ReminderType identifies which rule produced a reminder.
type ReminderType string

const (
	ReminderBeforeDue    ReminderType = "before_due"
	ReminderOnDueDate    ReminderType = "on_due_date"
	ReminderOverdueDaily ReminderType = "overdue_daily"
)

// ReminderResult is one fired (or projected) reminder for a bill.
// DaysBeforeDue is set only for before_due, DaysOverdue only for overdue_daily.
type ReminderResult struct {
	BillID        string       `json:"billId"`
	Type          ReminderType `json:"type"`
	ScheduledDate string       `json:"scheduledDate"`
	DaysBeforeDue int          `json:"daysBeforeDue,omitempty"`
	DaysOverdue   int          `json:"daysOverdue,omitempty"`
}

// EvaluateBeforeDue fires when currentDate is exactly NotifyBeforeDays days
// before the bill's due date. Exactly, not a range: a 3-day policy fires once,
// three days out, and never on the two days after.
func EvaluateBeforeDue(bill domain.Bill, policy domain.ReminderPolicy, currentDate string) *ReminderResult {
	if policy.NotifyBeforeDays <= 0 {
		return nil
	}

	daysToDue := domain.DaysDifference(currentDate, bill.DueDate)
	if daysToDue != policy.NotifyBeforeDays {
		return nil
	}

	return &ReminderResult{
		BillID:        bill.ID,
		Type:          ReminderBeforeDue,
		ScheduledDate: currentDate,
		DaysBeforeDue: policy.NotifyBeforeDays,
	}
}

// EvaluateOnDueDate fires when currentDate is the bill's due date.
func EvaluateOnDueDate(bill domain.Bill, policy domain.ReminderPolicy, currentDate string) *ReminderResult {
	if !policy.NotifyOnDueDate {
		return nil
	}
	if currentDate != bill.DueDate {
		return nil
	}

	return &ReminderResult{
		BillID:        bill.ID,
		Type:          ReminderOnDueDate,
		ScheduledDate: currentDate,
	}
}

// EvaluateOverdueDaily fires every day a bill sits in overdue status past its
// due date. Days overdue is re-derived against currentDate on each evaluation.
func EvaluateOverdueDaily(bill domain.Bill, policy domain.ReminderPolicy, currentDate string) *ReminderResult {
	if !policy.RepeatOverdueDaily {
		return nil
	}
	if bill.Status != domain.BillStatusOverdue {
		return nil
	}

	daysOverdue := domain.DaysDifference(bill.DueDate, currentDate)
	if daysOverdue <= 0 {
		return nil
	}

	return &ReminderResult{
		BillID:        bill.ID,
		Type:          ReminderOverdueDaily,
		ScheduledDate: currentDate,
		DaysOverdue:   daysOverdue,
	}
}

// EvaluateAll applies all three rules across a bill collection and returns the
// union of fired results. Paid bills are excluded up front; a single bill can
// contribute at most one result per rule.
func EvaluateAll(bills []domain.Bill, policy domain.ReminderPolicy, currentDate string) []ReminderResult {
	var results []ReminderResult

	for _, bill := range bills {
		if bill.Status == domain.BillStatusPaid {
			continue
		}

		if r := EvaluateBeforeDue(bill, policy, currentDate); r != nil {
			results = append(results, *r)
		}
		if r := EvaluateOnDueDate(bill, policy, currentDate); r != nil {
			results = append(results, *r)
		}
		if r := EvaluateOverdueDaily(bill, policy, currentDate); r != nil {
			results = append(results, *r)
		}
	}

	return results
}

// ProjectSchedule returns all future before_due and on_due_date firing dates
// for a bill from startDate, for planning views. overdue_daily cannot be
// projected: it depends on a future status nobody knows yet.
func ProjectSchedule(bill domain.Bill, policy domain.ReminderPolicy, startDate string) []ReminderResult {
	var schedule []ReminderResult

	if policy.NotifyBeforeDays > 0 {
		due, err := time.Parse(domain.DateLayout, bill.DueDate)
		if err == nil {
			scheduledDate := due.AddDate(0, 0, -policy.NotifyBeforeDays).Format(domain.DateLayout)
			if scheduledDate >= startDate {
				schedule = append(schedule, ReminderResult{
					BillID:        bill.ID,
					Type:          ReminderBeforeDue,
					ScheduledDate: scheduledDate,
					DaysBeforeDue: policy.NotifyBeforeDays,
				})
			}
		}
	}

	if policy.NotifyOnDueDate && bill.DueDate >= startDate {
		schedule = append(schedule, ReminderResult{
			BillID:        bill.ID,
			Type:          ReminderOnDueDate,
			ScheduledDate: bill.DueDate,
		})
	}

	return schedule
}
