// Package events implements the two semantic-event sinks the updater
// writes to: a bounded in-process channel for subscribers, and an
// append-only per-chain journal file. Both are grounded on the
// teacher's single-writer-per-block model (node/store/reorg.go), with
// the journal's own lock standing in for the store's per-block
// transaction per DESIGN.md's note on why a single *os.File needs its
// own mutex here.
package events

import (
	"fmt"

	"rubin.dev/node/envelope"
	"rubin.dev/node/index/store"
)

// Event is the sum type of the two semantic events the updater emits.
// Exactly one of Created/Transferred is non-nil.
type Event struct {
	Created     *InscriptionCreated
	Transferred *InscriptionTransferred
}

// InscriptionCreated is emitted the moment a new inscription is
// assigned its sequence number and location.
type InscriptionCreated struct {
	BlockHeight         uint64
	Charms              uint16
	InscriptionID       envelope.InscriptionID
	Location            *store.SatPoint // nil if unbound
	ParentInscriptionIDs []envelope.InscriptionID
	SequenceNumber      uint32
}

// InscriptionTransferred is emitted when an existing inscription moves
// to a new satpoint.
type InscriptionTransferred struct {
	BlockHeight    uint64
	InscriptionID  envelope.InscriptionID
	NewLocation    store.SatPoint
	OldLocation    store.SatPoint
	SequenceNumber uint32
}

// ErrSubscriberFull is returned when the subscriber channel's buffer
// is saturated; per spec, this is fatal to the block being processed,
// not a condition to retry or drop silently.
var ErrSubscriberFull = fmt.Errorf("events: subscriber channel full")

// Emitter fans a single stream of events out to an optional bounded
// subscriber channel and, owned separately, a journal writer.
type Emitter struct {
	subscriber chan<- Event
}

// NewEmitter returns an Emitter with no subscriber attached; events
// are simply not relayed to a channel until Subscribe is called.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe attaches a bounded channel as the sole subscriber. Only
// one subscriber is supported, matching the "optional bounded
// synchronous channel" singular described in spec.md §4.6.
func (e *Emitter) Subscribe(ch chan<- Event) {
	e.subscriber = ch
}

// Emit delivers ev to the subscriber channel, if any, using a
// non-blocking send. A full buffer is fatal: the caller must abort the
// block rather than let a subscriber silently miss committed state.
func (e *Emitter) Emit(ev Event) error {
	if e.subscriber == nil {
		return nil
	}
	select {
	case e.subscriber <- ev:
		return nil
	default:
		return ErrSubscriberFull
	}
}
