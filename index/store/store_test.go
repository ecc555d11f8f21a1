package store

import (
	"testing"

	"rubin.dev/node/envelope"
	"rubin.dev/node/ordinals"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOutpointValueRoundTrip(t *testing.T) {
	s := openTestStore(t)
	op := OutPoint{TxID: [32]byte{1, 2, 3}, Vout: 7}
	if err := s.Update(func(tx *Tx) error {
		return tx.PutOutpointValue(op, 12345)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var got uint64
	var ok bool
	if err := s.View(func(tx *Tx) error {
		got, ok = tx.GetOutpointValue(op)
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if !ok || got != 12345 {
		t.Fatalf("got=%d,%v want 12345,true", got, ok)
	}
}

func TestSequenceNumberForIDRoundTrip(t *testing.T) {
	s := openTestStore(t)
	id := envelope.InscriptionID{TxID: [32]byte{9}, Index: 2}
	if err := s.Update(func(tx *Tx) error {
		return tx.PutSequenceNumberForID(id, 42)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var seq uint32
	var ok bool
	if err := s.View(func(tx *Tx) error {
		seq, ok = tx.GetSequenceNumberForID(id)
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if !ok || seq != 42 {
		t.Fatalf("got=%d,%v want 42,true", seq, ok)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	sat := ordinals.Sat(500)
	entry := InscriptionEntry{
		Charms:    3,
		Fee:       10,
		Height:    100,
		ID:        envelope.InscriptionID{TxID: [32]byte{4}, Index: 0},
		Number:    -5,
		Parents:   []uint32{1, 2, 3},
		Sat:       &sat,
		SequenceNumber: 9,
		Timestamp: 1234,
	}
	if err := s.Update(func(tx *Tx) error {
		return tx.PutEntry(9, entry)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var got InscriptionEntry
	var ok bool
	if err := s.View(func(tx *Tx) error {
		var err error
		got, ok, err = tx.GetEntry(9)
		return err
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if !ok {
		t.Fatal("entry not found")
	}
	if got.Charms != entry.Charms || got.Fee != entry.Fee || got.Height != entry.Height {
		t.Fatalf("got=%+v want=%+v", got, entry)
	}
	if got.Number != entry.Number {
		t.Fatalf("number got=%d want=%d", got.Number, entry.Number)
	}
	if got.Sat == nil || *got.Sat != *entry.Sat {
		t.Fatalf("sat got=%v want=%v", got.Sat, entry.Sat)
	}
	if len(got.Parents) != 3 || got.Parents[1] != 2 {
		t.Fatalf("parents=%v", got.Parents)
	}
	if got.SequenceNumber != entry.SequenceNumber {
		t.Fatalf("sequence number got=%d want=%d", got.SequenceNumber, entry.SequenceNumber)
	}
}

func TestSatpointMultimap(t *testing.T) {
	s := openTestStore(t)
	sp := SatPoint{Outpoint: OutPoint{TxID: [32]byte{1}, Vout: 0}, Offset: 0}
	if err := s.Update(func(tx *Tx) error {
		if err := tx.InsertSatpointSequence(sp, 1); err != nil {
			return err
		}
		return tx.InsertSatpointSequence(sp, 2)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var seqs []uint32
	if err := s.View(func(tx *Tx) error {
		seqs = tx.SequenceNumbersForSatpoint(sp)
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("got %d seqs, want 2: %v", len(seqs), seqs)
	}

	if err := s.Update(func(tx *Tx) error {
		return tx.RemoveAllForSatpoint(sp)
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.View(func(tx *Tx) error {
		seqs = tx.SequenceNumbersForSatpoint(sp)
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(seqs) != 0 {
		t.Fatalf("got %d seqs after removal, want 0", len(seqs))
	}
}

func TestHomeInscriptionsEviction(t *testing.T) {
	s := openTestStore(t)
	if err := s.Update(func(tx *Tx) error {
		for i := uint32(0); i < homeInscriptionsCap+5; i++ {
			id := envelope.InscriptionID{Index: i}
			if err := tx.InsertHomeInscription(i, id); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.View(func(tx *Tx) error {
		b := tx.bucket(bucketHomeInscriptions)
		if n := b.Stats().KeyN; n != homeInscriptionsCap {
			t.Fatalf("home_inscriptions has %d entries, want %d", n, homeInscriptionsCap)
		}
		c := b.Cursor()
		k, _ := c.First()
		if k == nil {
			t.Fatal("expected a first key")
		}
		return nil
	}); err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	s := openTestStore(t)
	if s.Manifest().LastIndexedHeight != -1 {
		t.Fatalf("fresh manifest LastIndexedHeight=%d, want -1", s.Manifest().LastIndexedHeight)
	}
	m := *s.Manifest()
	m.LastIndexedHeight = 5
	m.NextSequenceNum = 10
	if err := s.SetManifest(&m); err != nil {
		t.Fatalf("SetManifest: %v", err)
	}
	if s.Manifest().LastIndexedHeight != 5 {
		t.Fatalf("got %d, want 5", s.Manifest().LastIndexedHeight)
	}
}
