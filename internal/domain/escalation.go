package domain

// EscalationLevel is the severity classification derived from days overdue.
type EscalationLevel string

const (
	EscalationInfo     EscalationLevel = "INFO"
	EscalationWarning  EscalationLevel = "WARNING"
	EscalationCritical EscalationLevel = "CRITICAL"
)

// ClassifyEscalation maps days overdue to a severity level:
// 0 days INFO, 1-3 days WARNING, more than 3 days CRITICAL.
// Total over non-negative input; the 3/4 boundary is load-bearing for
// downstream template selection and must not move.
func ClassifyEscalation(daysOverdue int) EscalationLevel {
	switch {
	case daysOverdue <= 0:
		return EscalationInfo
	case daysOverdue <= 3:
		return EscalationWarning
	default:
		return EscalationCritical
	}
}

// EscalationContext is the ephemeral severity assessment produced for one
// overdue bill within one pipeline pass. It is never persisted.
type EscalationContext struct {
	BillID      string          `json:"billId"`
	DaysOverdue int             `json:"daysOverdue"`
	Level       EscalationLevel `json:"level"`
	Timestamp   string          `json:"timestamp"`
}
