// Package store persists the indexer's tables in a single bbolt
// database, one top-level bucket per table from the data model,
// following the teacher's (node/store) bucket-per-table layout and its
// "composite key in one bucket" idiom for multimap tables.
package store

import (
	"rubin.dev/node/envelope"
	"rubin.dev/node/ordinals"
)

// OutPoint identifies a transaction output.
type OutPoint struct {
	TxID [32]byte
	Vout uint32
}

// NullOutPoint is the sentinel outpoint used for lost/coinbase-burned
// satpoints, mirroring the all-zero/all-ones OutPoint::null() sentinel.
var NullOutPoint = OutPoint{Vout: 0xffffffff}

// IsNull reports whether p is the lost sentinel (unbound inscriptions
// use UnboundOutPoint instead, for which IsNull is false).
func (p OutPoint) IsNull() bool {
	return p == NullOutPoint
}

// SatPoint locates a sat within an output at a given byte offset.
type SatPoint struct {
	Outpoint OutPoint
	Offset   uint64
}

// UnboundOutPoint is the synthetic outpoint given to unbound
// inscriptions (those with no sat to track), distinct from
// NullOutPoint so lost and unbound inscriptions remain distinguishable.
var UnboundOutPoint = OutPoint{Vout: 0xfffffffe}

// InscriptionEntry is the persisted record for one inscription,
// indexed by its sequence number.
type InscriptionEntry struct {
	Charms         uint16
	Fee            uint64
	Height         uint64
	ID             envelope.InscriptionID
	Number         int32
	Parents        []uint32
	Sat            *ordinals.Sat
	SequenceNumber uint32
	Timestamp      uint32
}
