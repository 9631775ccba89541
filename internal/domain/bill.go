package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BillStatus is the lifecycle state of a bill.
// Transitions: pending -> overdue (set by the overdue scan) and any non-paid
// state -> paid (explicit payment). Paid is terminal.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusOverdue BillStatus = "overdue"
	BillStatusPaid    BillStatus = "paid"
)

// Bill is a single payable obligation tracked by PayGuard.
// Amount is in minor currency units (cents), never fractional.
type Bill struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Amount    int64      `json:"amount"`
	DueDate   string     `json:"dueDate"`
	Status    BillStatus `json:"status"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// CreateBillRequest is the payload for registering a new bill.
type CreateBillRequest struct {
	Name    string `json:"name"`
	Amount  int64  `json:"amount"`
	DueDate string `json:"dueDate"`
}

// Validate checks a fully constructed bill record. Creation runs this after
// building the record as defense in depth: a bill that fails here must never
// reach the store.
func (b *Bill) Validate() error {
	if b.ID == "" {
		return &ErrValidation{Field: "id", Message: "required"}
	}
	if strings.TrimSpace(b.Name) == "" {
		return &ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if b.Amount <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if !IsValidDate(b.DueDate) {
		return &ErrValidation{Field: "dueDate", Message: "invalid format, use YYYY-MM-DD"}
	}
	switch b.Status {
	case BillStatusPending, BillStatusOverdue, BillStatusPaid:
	default:
		return &ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status '%s'", b.Status)}
	}
	return nil
}

// NewBillID generates a unique bill id: bill_<unix-millis>_<suffix>.
func NewBillID() string {
	return fmt.Sprintf("bill_%d_%s", time.Now().UnixMilli(), idSuffix())
}

// idSuffix returns a short random suffix for entity ids.
func idSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
}
