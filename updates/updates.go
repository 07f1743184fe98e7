// Package updates implements update-gap detection and recovery: server
// updates carry sequence positions (pts, qts, seq) and must be applied
// in order, so a hole in the sequence triggers a difference fetch and
// out-of-order updates are buffered until the hole is filled.
package updates

import "context"

// Update is a single server update with its position in the sequence.
//
// Exactly one of Pts, Qts or Seq is expected to be set. Updates with no
// position are dispatched to the handler immediately.
type Update struct {
	// Pts is the new common state value after applying this update.
	Pts int
	// PtsCount is the number of events covered by this update. Zero is
	// treated as one.
	PtsCount int
	// Qts is the new secondary state value.
	Qts int
	// Seq is the new updates sequence number.
	Seq int
	// Date is the server time of the update, if known.
	Date int

	// Value is the opaque update payload delivered to the handler.
	Value interface{}
}

// Handler handles updates in their final, ordered form.
type Handler interface {
	Handle(ctx context.Context, u Update) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, u Update) error

// Handle implements Handler.
func (h HandlerFunc) Handle(ctx context.Context, u Update) error { return h(ctx, u) }

// Difference is the missing slice of updates between the local and the
// remote state.
type Difference struct {
	// Updates to apply, already ordered.
	Updates []Update
	// State is the remote state after the last update.
	State State
}

// DifferenceFetcher fetches updates missing between the local state and
// the current remote state.
type DifferenceFetcher func(ctx context.Context, state State) (Difference, error)
