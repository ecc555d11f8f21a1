// Package satrange implements the optional sat-range ledger: the
// half-open (start, end) ranges of sats flowing through a
// transaction's inputs, and the offset lookup used to attach a sat
// number to a newly created inscription. Grounded on
// original_source/src/index/updater/inscription_updater.rs's
// calculate_sat and its VecDeque<(u64, u64)> per-input range queue.
package satrange

import "rubin.dev/node/ordinals"

// Range is a half-open [Start, End) span of sats.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of sats the range covers.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// CalculateSat walks ranges in order, accumulating lengths, and
// returns the sat sitting at the given byte-weighted offset into the
// concatenation of those ranges. It panics if offset exceeds the total
// length of ranges, mirroring the original's unreachable!() — callers
// must only invoke it with an offset known to fall within the input's
// total value.
func CalculateSat(ranges []Range, offset uint64) ordinals.Sat {
	var consumed uint64
	for _, r := range ranges {
		size := r.Len()
		if consumed+size > offset {
			return ordinals.Sat(r.Start + offset - consumed)
		}
		consumed += size
	}
	panic("satrange: offset exceeds total range length")
}

// Ledger tracks, per transaction input, the queue of sat ranges still
// available to be assigned to outputs as inputs are consumed
// left-to-right. It mirrors the teacher's pattern of scratch state
// owned exclusively by the updater for the block being processed
// (node/store/reorg.go's per-block working set), scoped here to a
// single transaction's inputs instead of a whole block.
type Ledger struct {
	queue []Range
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AssignInput appends an input's sat ranges to the back of the queue,
// in the order the input's UTXO held them.
func (l *Ledger) AssignInput(ranges []Range) {
	l.queue = append(l.queue, ranges...)
}

// Consume removes exactly n sats' worth of ranges from the front of
// the queue and returns them, splitting the final range if n falls
// inside it. It panics if the queue holds fewer than n sats, which
// would indicate a caller bug (output value exceeding available input
// value).
func (l *Ledger) Consume(n uint64) []Range {
	var out []Range
	for n > 0 {
		if len(l.queue) == 0 {
			panic("satrange: ledger exhausted before consuming requested amount")
		}
		head := l.queue[0]
		length := head.Len()
		if length <= n {
			out = append(out, head)
			l.queue = l.queue[1:]
			n -= length
			continue
		}
		out = append(out, Range{Start: head.Start, End: head.Start + n})
		l.queue[0] = Range{Start: head.Start + n, End: head.End}
		n = 0
	}
	return out
}

// Remaining returns the total number of sats still queued.
func (l *Ledger) Remaining() uint64 {
	var total uint64
	for _, r := range l.queue {
		total += r.Len()
	}
	return total
}
