package domain

import (
	"fmt"
	"strings"
	"time"
)

// Subscription is a recurring charge. Its lifecycle is independent from bills;
// the overdue pipeline never touches it beyond creation bookkeeping.
type Subscription struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	RenewalDay int    `json:"renewalDay"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// CreateSubscriptionRequest is the payload for registering a new subscription.
type CreateSubscriptionRequest struct {
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	RenewalDay int    `json:"renewalDay"`
}

// Validate checks a fully constructed subscription record.
func (s *Subscription) Validate() error {
	if s.ID == "" {
		return &ErrValidation{Field: "id", Message: "required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if s.Amount <= 0 {
		return &ErrValidation{Field: "amount", Message: "must be positive"}
	}
	if s.RenewalDay < 1 || s.RenewalDay > 31 {
		return &ErrValidation{Field: "renewalDay", Message: "must be between 1 and 31"}
	}
	return nil
}

// NewSubscriptionID generates a unique subscription id: sub_<unix-millis>_<suffix>.
func NewSubscriptionID() string {
	return fmt.Sprintf("sub_%d_%s", time.Now().UnixMilli(), idSuffix())
}

// NextRenewalDate returns the first date strictly after today on which a
// subscription with the given renewal day renews. When the renewal day does
// not exist in the target month (e.g. the 31st in February) it clamps to the
// last day of that month.
func NextRenewalDate(renewalDay int, today string) string {
	t, _ := time.Parse(DateLayout, today)

	next := renewalOn(t.Year(), t.Month(), renewalDay)
	if !next.After(t) {
		next = renewalOn(t.Year(), t.Month()+1, renewalDay)
	}
	return next.Format(DateLayout)
}

func renewalOn(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
