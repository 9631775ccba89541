package domain

// Event topics. These names are part of the wire contract shared with the
// frontend and any external bus consumers; do not rename.
const (
	TopicBillCreated           = "bill.created"
	TopicSubscriptionCreated   = "subscription.created"
	TopicBillOverdue           = "bill.overdue"
	TopicEscalationEvaluate    = "escalation.evaluate"
	TopicNotificationSend      = "notification.send"
	TopicDailySummaryGenerated = "daily.summary.generated"
)

// State store collections.
const (
	CollectionBills         = "bills"
	CollectionSubscriptions = "subscriptions"
)

// BillCreatedEvent is published once per successful bill creation, carrying
// the stored record unchanged.
type BillCreatedEvent struct {
	Bill      Bill   `json:"bill"`
	Timestamp string `json:"timestamp"`
}

// SubscriptionCreatedEvent is published once per successful subscription creation.
type SubscriptionCreatedEvent struct {
	Subscription Subscription `json:"subscription"`
	Timestamp    string       `json:"timestamp"`
}

// BillOverdueEvent is published by the overdue scan for every unpaid bill past
// its due date — including bills already marked overdue, which re-trigger the
// downstream stages every cycle to drive daily repeat reminders.
type BillOverdueEvent struct {
	Bill        Bill   `json:"bill"`
	DaysOverdue int    `json:"daysOverdue"`
	Timestamp   string `json:"timestamp"`
}

// EscalationEvaluateEvent carries the severity assessment for one overdue bill.
type EscalationEvaluateEvent struct {
	EscalationContext EscalationContext `json:"escalationContext"`
	Bill              Bill              `json:"bill"`
	Timestamp         string            `json:"timestamp"`
}

// NotificationContext is the template payload embedded in a notification intent.
type NotificationContext struct {
	BillID          string          `json:"billId"`
	BillName        string          `json:"billName"`
	Amount          int64           `json:"amount"`
	DueDate         string          `json:"dueDate"`
	DaysOverdue     int             `json:"daysOverdue"`
	EscalationLevel EscalationLevel `json:"escalationLevel"`
	Status          BillStatus      `json:"status"`
}

// NotificationSendEvent is the decision to notify. Emission is intent, not
// delivery: the scan re-emits for still-overdue bills every cycle and
// downstream transport must not assume dedup.
type NotificationSendEvent struct {
	Recipient       string              `json:"recipient"`
	MessageTemplate string              `json:"messageTemplate"`
	ContextData     NotificationContext `json:"contextData"`
	Timestamp       string              `json:"timestamp"`
	TraceID         string              `json:"traceId"`
}

// DailySummaryGeneratedEvent is published exactly once per aggregation run.
type DailySummaryGeneratedEvent struct {
	Summary   DailySummary `json:"summary"`
	Timestamp string       `json:"timestamp"`
}
