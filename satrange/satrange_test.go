package satrange

import "testing"

func TestCalculateSat(t *testing.T) {
	ranges := []Range{{Start: 0, End: 100}, {Start: 1000, End: 1050}}
	if got := CalculateSat(ranges, 0); got != 0 {
		t.Fatalf("got=%d, want 0", got)
	}
	if got := CalculateSat(ranges, 99); got != 99 {
		t.Fatalf("got=%d, want 99", got)
	}
	if got := CalculateSat(ranges, 100); got != 1000 {
		t.Fatalf("got=%d, want 1000", got)
	}
	if got := CalculateSat(ranges, 149); got != 1049 {
		t.Fatalf("got=%d, want 1049", got)
	}
}

func TestCalculateSatPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for out-of-range offset")
		}
	}()
	CalculateSat([]Range{{Start: 0, End: 10}}, 10)
}

func TestLedgerConsumeExact(t *testing.T) {
	l := NewLedger()
	l.AssignInput([]Range{{Start: 0, End: 50}})
	out := l.Consume(50)
	if len(out) != 1 || out[0] != (Range{Start: 0, End: 50}) {
		t.Fatalf("got %+v", out)
	}
	if l.Remaining() != 0 {
		t.Fatalf("remaining=%d, want 0", l.Remaining())
	}
}

func TestLedgerConsumeSplit(t *testing.T) {
	l := NewLedger()
	l.AssignInput([]Range{{Start: 0, End: 100}})
	out := l.Consume(30)
	if len(out) != 1 || out[0] != (Range{Start: 0, End: 30}) {
		t.Fatalf("got %+v", out)
	}
	if l.Remaining() != 70 {
		t.Fatalf("remaining=%d, want 70", l.Remaining())
	}
	rest := l.Consume(70)
	if len(rest) != 1 || rest[0] != (Range{Start: 30, End: 100}) {
		t.Fatalf("got %+v", rest)
	}
}

func TestLedgerConsumeAcrossInputs(t *testing.T) {
	l := NewLedger()
	l.AssignInput([]Range{{Start: 0, End: 20}})
	l.AssignInput([]Range{{Start: 100, End: 130}})
	out := l.Consume(30)
	want := []Range{{Start: 0, End: 20}, {Start: 100, End: 110}}
	if len(out) != 2 || out[0] != want[0] || out[1] != want[1] {
		t.Fatalf("got %+v, want %+v", out, want)
	}
}

func TestLedgerConsumePanicsWhenExhausted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	l := NewLedger()
	l.AssignInput([]Range{{Start: 0, End: 10}})
	l.Consume(20)
}
