package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	"rubin.dev/node/envelope"
)

// Tx wraps one bbolt transaction (read-only or read-write) and exposes
// the table operations the updater needs, named after the tables in
// the data model rather than after bbolt primitives.
type Tx struct {
	btx *bolt.Tx
}

func (t *Tx) bucket(name []byte) *bolt.Bucket {
	return t.btx.Bucket(name)
}

// --- outpoint_to_value ---

func (t *Tx) GetOutpointValue(op OutPoint) (uint64, bool) {
	v := t.bucket(bucketOutpointToValue).Get(encodeOutPoint(op))
	if v == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint64(v), true
}

func (t *Tx) PutOutpointValue(op OutPoint, value uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	return t.bucket(bucketOutpointToValue).Put(encodeOutPoint(op), b[:])
}

func (t *Tx) DeleteOutpointValue(op OutPoint) error {
	return t.bucket(bucketOutpointToValue).Delete(encodeOutPoint(op))
}

// --- id_to_sequence_number ---

func (t *Tx) GetSequenceNumberForID(id envelope.InscriptionID) (uint32, bool) {
	v := t.bucket(bucketIDToSequenceNumber).Get(encodeInscriptionID(id))
	if v == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v), true
}

func (t *Tx) PutSequenceNumberForID(id envelope.InscriptionID, seq uint32) error {
	return t.bucket(bucketIDToSequenceNumber).Put(encodeInscriptionID(id), u32le(seq))
}

// --- inscription_number_to_sequence_number ---

func (t *Tx) PutSequenceNumberForNumber(number int32, seq uint32) error {
	return t.bucket(bucketInscriptionNumberToSequence).Put(i32ToSortableBE(number), u32le(seq))
}

func (t *Tx) GetSequenceNumberForNumber(number int32) (uint32, bool) {
	v := t.bucket(bucketInscriptionNumberToSequence).Get(i32ToSortableBE(number))
	if v == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v), true
}

// --- sequence_number_to_entry ---

func (t *Tx) PutEntry(seq uint32, e InscriptionEntry) error {
	return t.bucket(bucketSequenceNumberToEntry).Put(u32be(seq), encodeIndexEntry(e))
}

func (t *Tx) GetEntry(seq uint32) (InscriptionEntry, bool, error) {
	v := t.bucket(bucketSequenceNumberToEntry).Get(u32be(seq))
	if v == nil {
		return InscriptionEntry{}, false, nil
	}
	e, err := decodeIndexEntry(v)
	if err != nil {
		return InscriptionEntry{}, false, err
	}
	return e, true, nil
}

// --- sequence_number_to_satpoint ---

func (t *Tx) PutSatpointForSequence(seq uint32, sp SatPoint) error {
	return t.bucket(bucketSequenceNumberToSatpoint).Put(u32be(seq), encodeSatPoint(sp))
}

func (t *Tx) GetSatpointForSequence(seq uint32) (SatPoint, bool, error) {
	v := t.bucket(bucketSequenceNumberToSatpoint).Get(u32be(seq))
	if v == nil {
		return SatPoint{}, false, nil
	}
	sp, err := decodeSatPoint(v)
	if err != nil {
		return SatPoint{}, false, err
	}
	return sp, true, nil
}

// --- satpoint_to_sequence_number (multimap) ---

func (t *Tx) InsertSatpointSequence(sp SatPoint, seq uint32) error {
	return multimapInsert(t.bucket(bucketSatpointToSequenceNumber), encodeSatPoint(sp), u32be(seq))
}

func (t *Tx) RemoveAllForSatpoint(sp SatPoint) error {
	return multimapRemoveAllForKey(t.bucket(bucketSatpointToSequenceNumber), encodeSatPoint(sp))
}

func (t *Tx) SequenceNumbersForSatpoint(sp SatPoint) []uint32 {
	raw := multimapValuesForKey(t.bucket(bucketSatpointToSequenceNumber), encodeSatPoint(sp), 4)
	out := make([]uint32, len(raw))
	for i, b := range raw {
		out[i] = binary.BigEndian.Uint32(b)
	}
	return out
}

// InscriptionsOnOutput returns every (old satpoint, sequence number)
// pair currently located anywhere within op, regardless of byte
// offset — the lookup Index::inscriptions_on_output performs by
// scanning satpoint_to_sequence_number for the outpoint prefix shared
// by every offset within it.
func (t *Tx) InscriptionsOnOutput(op OutPoint) []struct {
	Satpoint SatPoint
	Sequence uint32
} {
	prefix := encodeOutPoint(op)
	raw := multimapValuesForKey(t.bucket(bucketSatpointToSequenceNumber), prefix, 8+4)
	out := make([]struct {
		Satpoint SatPoint
		Sequence uint32
	}, len(raw))
	for i, b := range raw {
		out[i].Satpoint = SatPoint{Outpoint: op, Offset: binary.LittleEndian.Uint64(b[:8])}
		out[i].Sequence = binary.BigEndian.Uint32(b[8:])
	}
	return out
}

// --- sat_to_sequence_number (multimap) ---

func (t *Tx) InsertSatSequence(sat uint64, seq uint32) error {
	return multimapInsert(t.bucket(bucketSatToSequenceNumber), u64be(sat), u32be(seq))
}

func (t *Tx) SequenceNumbersForSat(sat uint64) []uint32 {
	raw := multimapValuesForKey(t.bucket(bucketSatToSequenceNumber), u64be(sat), 4)
	out := make([]uint32, len(raw))
	for i, b := range raw {
		out[i] = binary.BigEndian.Uint32(b)
	}
	return out
}

// --- sequence_number_to_children (multimap) ---

func (t *Tx) InsertChild(parentSeq, childSeq uint32) error {
	return multimapInsert(t.bucket(bucketSequenceNumberToChildren), u32be(parentSeq), u32be(childSeq))
}

func (t *Tx) ChildrenOf(parentSeq uint32) []uint32 {
	raw := multimapValuesForKey(t.bucket(bucketSequenceNumberToChildren), u32be(parentSeq), 4)
	out := make([]uint32, len(raw))
	for i, b := range raw {
		out[i] = binary.BigEndian.Uint32(b)
	}
	return out
}

// --- content_type_to_count ---

func (t *Tx) IncrementContentTypeCount(contentType []byte) error {
	b := t.bucket(bucketContentTypeToCount)
	key := contentTypeKey(contentType)
	var count uint64
	if v := b.Get(key); v != nil {
		count = binary.LittleEndian.Uint64(v)
	}
	count++
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], count)
	return b.Put(key, out[:])
}

func contentTypeKey(contentType []byte) []byte {
	if len(contentType) == 0 {
		return []byte{0}
	}
	return append([]byte{1}, contentType...)
}

// --- transaction_id_to_transaction ---

func (t *Tx) PutTransaction(txid [32]byte, raw []byte) error {
	return t.bucket(bucketTransactionIDToTransaction).Put(txid[:], raw)
}

func (t *Tx) GetTransaction(txid [32]byte) ([]byte, bool) {
	v := t.bucket(bucketTransactionIDToTransaction).Get(txid[:])
	if v == nil {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// --- home_inscriptions ---

const homeInscriptionsCap = 100

// InsertHomeInscription records seq/id as a home-page candidate,
// evicting the single oldest (lowest sequence number) entry first if
// the table is already at capacity — bbolt's byte-sorted keys make the
// oldest entry the cursor's First(), the Go equivalent of the
// original's BTreeMap::pop_first.
func (t *Tx) InsertHomeInscription(seq uint32, id envelope.InscriptionID) error {
	b := t.bucket(bucketHomeInscriptions)
	// Count with a cursor: Bucket.Stats only sees committed pages, not
	// puts made earlier in this same transaction.
	c := b.Cursor()
	n := 0
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	if n >= homeInscriptionsCap {
		if k, _ := c.First(); k != nil {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
	}
	return b.Put(u32be(seq), encodeInscriptionID(id))
}

func u32le(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}
