// Package client holds adapters for external lookups the pipeline depends on
// but does not own. Today that is only recipient resolution.
package client

import (
	"context"

	"github.com/yubarajDas/payguard-motia/internal/domain"
)

// StaticResolver resolves every bill to one configured recipient. It stands in
// for a real directory-service client; the dispatcher already talks to it
// through port.RecipientResolver and a circuit breaker, so swapping in an HTTP
// client later is contained here.
type StaticResolver struct {
	recipient string
}

// NewStaticResolver returns a resolver that always answers with recipient.
func NewStaticResolver(recipient string) *StaticResolver {
	return &StaticResolver{recipient: recipient}
}

// Resolve returns the configured recipient for any bill.
func (r *StaticResolver) Resolve(_ context.Context, _ domain.Bill) (string, error) {
	return r.recipient, nil
}
