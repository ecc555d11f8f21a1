package updater

import (
	"testing"

	"rubin.dev/node/envelope"
)

func id(n byte) envelope.InscriptionID {
	var i envelope.InscriptionID
	i.TxID[0] = n
	return i
}

func TestFilterParentsRestrictsToFloatingAndDedupes(t *testing.T) {
	potential := map[envelope.InscriptionID]bool{id(1): true, id(2): true}
	parents := []envelope.InscriptionID{id(1), id(3), id(1), id(2)}

	got := filterParents(parents, potential)
	want := []envelope.InscriptionID{id(1), id(2)}

	if len(got) != len(want) {
		t.Fatalf("filterParents() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filterParents()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFilterParentsEmpty(t *testing.T) {
	if got := filterParents(nil, map[envelope.InscriptionID]bool{}); got != nil {
		t.Fatalf("filterParents(nil) = %v, want nil", got)
	}
}

func TestBumpOffsetPreservesFirstClaimant(t *testing.T) {
	m := map[uint64]*offsetEntry{}
	bumpOffset(m, 100, id(1))
	bumpOffset(m, 100, id(2))

	e := m[100]
	if e.ID != id(1) {
		t.Fatalf("offsetEntry.ID = %v, want first claimant %v", e.ID, id(1))
	}
	if e.Count != 2 {
		t.Fatalf("offsetEntry.Count = %d, want 2", e.Count)
	}
}
