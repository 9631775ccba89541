// Package clock provides the wall-clock implementation of port.Clock.
package clock

import (
	"time"

	"github.com/yubarajDas/payguard-motia/internal/domain"
)

// System reads the wall clock in UTC.
type System struct{}

// NewSystem returns the wall-clock implementation.
func NewSystem() System {
	return System{}
}

// Today returns the current UTC calendar date as YYYY-MM-DD.
func (System) Today() string {
	return time.Now().UTC().Format(domain.DateLayout)
}

// Timestamp returns the current UTC instant as RFC 3339.
func (System) Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
