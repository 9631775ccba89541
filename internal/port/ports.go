// Package port defines the interfaces between the pipeline core and its
// external collaborators: the state store, the event bus, the clock and the
// recipient directory. Implementations live under internal/infra.
package port

import (
	"context"

	"github.com/yubarajDas/payguard-motia/internal/domain"
)

// StateStore is the persistent key-value collaborator that owns the bill and
// subscription sets. All mutations are whole-record replacements keyed by id;
// there is no compare-and-swap, so concurrent writers to the same id may
// clobber each other (accepted limitation, see DESIGN.md).
type StateStore interface {
	// Set stores record under collection/id, replacing any previous record.
	Set(ctx context.Context, collection, id string, record any) error
	// Get loads the record at collection/id into out (a pointer).
	// Returns false when the record is absent.
	Get(ctx context.Context, collection, id string, out any) (bool, error)
	// GetGroup loads every record in collection into out (a pointer to slice),
	// ordered by id for deterministic iteration.
	GetGroup(ctx context.Context, collection string, out any) error
	// Delete removes the record at collection/id. Deleting an absent record
	// is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// Event is a topic-addressed message published on the bus.
type Event struct {
	Topic string `json:"topic"`
	Data  any    `json:"data"`
}

// EventHandler consumes one event. A non-nil error propagates to the emitter
// so the invoking scheduler or bus can re-drive the stage.
type EventHandler func(ctx context.Context, evt Event) error

// EventBus publishes events to subscribed stages. Fire-and-forget from the
// producer's perspective; delivery and retry policy belong to the bus.
type EventBus interface {
	Emit(ctx context.Context, evt Event) error
}

// Clock supplies the single logical "current date" for an evaluation cycle.
// Injected everywhere so policy and pipeline logic stay deterministic in tests.
type Clock interface {
	// Today returns the current calendar date as YYYY-MM-DD.
	Today() string
	// Timestamp returns the current instant as an RFC 3339 string.
	Timestamp() string
}

// RecipientResolver looks up who should be notified about a bill. Recipient
// resolution is external to the pipeline core; the dispatcher treats it as a
// fixed lookup guarded by a circuit breaker.
type RecipientResolver interface {
	Resolve(ctx context.Context, bill domain.Bill) (string, error)
}
