package domain

// ReminderPolicy governs when notification intents fire relative to a bill's
// due date. A single policy applies globally; it is configuration, threaded
// explicitly into the evaluator rather than read from ambient state.
type ReminderPolicy struct {
	NotifyBeforeDays   int  `json:"notifyBeforeDays"`
	NotifyOnDueDate    bool `json:"notifyOnDueDate"`
	RepeatOverdueDaily bool `json:"repeatOverdueDaily"`
}

// DefaultReminderPolicy returns the stock policy: remind 3 days ahead, on the
// due date, and daily while overdue.
func DefaultReminderPolicy() ReminderPolicy {
	return ReminderPolicy{
		NotifyBeforeDays:   3,
		NotifyOnDueDate:    true,
		RepeatOverdueDaily: true,
	}
}
