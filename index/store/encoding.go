package store

import (
	"encoding/binary"
	"fmt"

	"rubin.dev/node/envelope"
	"rubin.dev/node/ordinals"
)

// Fixed-width binary encodings, little-endian manual byte-slice
// builders, following node/store/utxo_encoding.go byte-for-byte in
// style.

func encodeOutPoint(p OutPoint) []byte {
	out := make([]byte, 32+4)
	copy(out[0:32], p.TxID[:])
	binary.LittleEndian.PutUint32(out[32:36], p.Vout)
	return out
}

func decodeOutPoint(b []byte) (OutPoint, error) {
	if len(b) != 36 {
		return OutPoint{}, fmt.Errorf("store: outpoint: expected 36 bytes, got %d", len(b))
	}
	var p OutPoint
	copy(p.TxID[:], b[0:32])
	p.Vout = binary.LittleEndian.Uint32(b[32:36])
	return p, nil
}

func encodeSatPoint(sp SatPoint) []byte {
	out := make([]byte, 36+8)
	copy(out[0:36], encodeOutPoint(sp.Outpoint))
	binary.LittleEndian.PutUint64(out[36:44], sp.Offset)
	return out
}

func decodeSatPoint(b []byte) (SatPoint, error) {
	if len(b) != 44 {
		return SatPoint{}, fmt.Errorf("store: satpoint: expected 44 bytes, got %d", len(b))
	}
	op, err := decodeOutPoint(b[0:36])
	if err != nil {
		return SatPoint{}, err
	}
	return SatPoint{Outpoint: op, Offset: binary.LittleEndian.Uint64(b[36:44])}, nil
}

func encodeInscriptionID(id envelope.InscriptionID) []byte {
	out := make([]byte, 32+4)
	copy(out[0:32], id.TxID[:])
	binary.LittleEndian.PutUint32(out[32:36], id.Index)
	return out
}

func decodeInscriptionID(b []byte) (envelope.InscriptionID, error) {
	if len(b) != 36 {
		return envelope.InscriptionID{}, fmt.Errorf("store: inscription id: expected 36 bytes, got %d", len(b))
	}
	var id envelope.InscriptionID
	copy(id.TxID[:], b[0:32])
	id.Index = binary.LittleEndian.Uint32(b[32:36])
	return id, nil
}

func u32be(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func u64be(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func i32ToSortableBE(v int32) []byte {
	// Map the signed range onto an unsigned one that preserves
	// ordering under byte-wise comparison, the way bbolt's
	// lexicographic keys require (flip the sign bit).
	u := uint32(v) ^ 0x80000000
	return u32be(u)
}

// encodeIndexEntry serializes an InscriptionEntry.
//
// Layout: charms u16le | fee u64le | height u64le | id 36 | number i32le
// | sequence_number u32le | timestamp u32le | sat_present u8 | sat u64le
// (if present) | parent_count u32le | parents u32le...
func encodeIndexEntry(e InscriptionEntry) []byte {
	n := 2 + 8 + 8 + 36 + 4 + 4 + 4 + 1
	if e.Sat != nil {
		n += 8
	}
	n += 4 + 4*len(e.Parents)

	out := make([]byte, n)
	off := 0
	binary.LittleEndian.PutUint16(out[off:], e.Charms)
	off += 2
	binary.LittleEndian.PutUint64(out[off:], e.Fee)
	off += 8
	binary.LittleEndian.PutUint64(out[off:], e.Height)
	off += 8
	copy(out[off:off+36], encodeInscriptionID(e.ID))
	off += 36
	binary.LittleEndian.PutUint32(out[off:], uint32(e.Number))
	off += 4
	binary.LittleEndian.PutUint32(out[off:], e.SequenceNumber)
	off += 4
	binary.LittleEndian.PutUint32(out[off:], e.Timestamp)
	off += 4
	if e.Sat != nil {
		out[off] = 1
		off++
		binary.LittleEndian.PutUint64(out[off:], uint64(*e.Sat))
		off += 8
	} else {
		out[off] = 0
		off++
	}
	binary.LittleEndian.PutUint32(out[off:], uint32(len(e.Parents)))
	off += 4
	for _, p := range e.Parents {
		binary.LittleEndian.PutUint32(out[off:], p)
		off += 4
	}
	return out
}

func decodeIndexEntry(b []byte) (InscriptionEntry, error) {
	const head = 2 + 8 + 8 + 36 + 4 + 4 + 4 + 1
	if len(b) < head {
		return InscriptionEntry{}, fmt.Errorf("store: inscription entry: truncated")
	}
	off := 0
	var e InscriptionEntry
	e.Charms = binary.LittleEndian.Uint16(b[off:])
	off += 2
	e.Fee = binary.LittleEndian.Uint64(b[off:])
	off += 8
	e.Height = binary.LittleEndian.Uint64(b[off:])
	off += 8
	id, err := decodeInscriptionID(b[off : off+36])
	if err != nil {
		return InscriptionEntry{}, err
	}
	e.ID = id
	off += 36
	e.Number = int32(binary.LittleEndian.Uint32(b[off:]))
	off += 4
	e.SequenceNumber = binary.LittleEndian.Uint32(b[off:])
	off += 4
	e.Timestamp = binary.LittleEndian.Uint32(b[off:])
	off += 4
	satPresent := b[off]
	off++
	if satPresent == 1 {
		if len(b) < off+8 {
			return InscriptionEntry{}, fmt.Errorf("store: inscription entry: truncated sat")
		}
		sat := ordinals.Sat(binary.LittleEndian.Uint64(b[off:]))
		e.Sat = &sat
		off += 8
	}
	if len(b) < off+4 {
		return InscriptionEntry{}, fmt.Errorf("store: inscription entry: truncated parent count")
	}
	count := binary.LittleEndian.Uint32(b[off:])
	off += 4
	if len(b) != off+4*int(count) {
		return InscriptionEntry{}, fmt.Errorf("store: inscription entry: bad parent count")
	}
	e.Parents = make([]uint32, count)
	for i := range e.Parents {
		e.Parents[i] = binary.LittleEndian.Uint32(b[off:])
		off += 4
	}
	return e, nil
}
