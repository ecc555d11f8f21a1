package ordinals

import "testing"

func TestEpochSubsidy(t *testing.T) {
	cases := []struct {
		epoch Epoch
		want  uint64
	}{
		{0, 2_500_000_000},
		{1, 1_250_000_000},
		{31, 1},
		{32, 0},
	}
	for _, c := range cases {
		if got := c.epoch.Subsidy(); got != c.want {
			t.Fatalf("Epoch(%d).Subsidy()=%d, want %d", c.epoch, got, c.want)
		}
	}
}

func TestEpochStartingSat(t *testing.T) {
	if got := Epoch(0).StartingSat(); got != 0 {
		t.Fatalf("got=%d, want 0", got)
	}
	want1 := Epoch(0).Subsidy()*HalvingInterval + Epoch0Offset
	if got := uint64(Epoch(1).StartingSat()); got != want1 {
		t.Fatalf("got=%d, want %d", got, want1)
	}
	if got := Epoch(32).StartingSat(); got != Supply {
		t.Fatalf("got=%d, want Supply", got)
	}
	if got := Epoch(33).StartingSat(); got != Supply {
		t.Fatalf("Epoch(33).StartingSat()=%d, want Supply (clamped)", got)
	}
}

func TestEpochFromHeight(t *testing.T) {
	if EpochFromHeight(0) != 0 {
		t.Fatal("want epoch 0")
	}
	if EpochFromHeight(HalvingInterval) != 1 {
		t.Fatal("want epoch 1")
	}
	if EpochFromHeight(HalvingInterval+1) != 1 {
		t.Fatal("want epoch 1")
	}
}

func TestEpochFromSat(t *testing.T) {
	for epoch := 1; epoch < len(startingSats); epoch++ {
		starting := Sat(startingSats[epoch])
		if got := EpochFromSat(starting - 1); got != Epoch(epoch-1) {
			t.Fatalf("epoch=%d: EpochFromSat(starting-1)=%d, want %d", epoch, got, epoch-1)
		}
		if got := EpochFromSat(starting); got != Epoch(epoch) {
			t.Fatalf("epoch=%d: EpochFromSat(starting)=%d, want %d", epoch, got, epoch)
		}
		if got := EpochFromSat(starting + 1); got != Epoch(epoch) {
			t.Fatalf("epoch=%d: EpochFromSat(starting+1)=%d, want %d", epoch, got, epoch)
		}
	}
	if EpochFromSat(0) != 0 {
		t.Fatal("want epoch 0")
	}
}

func TestHeightSubsidy(t *testing.T) {
	cases := []struct {
		h    Height
		want uint64
	}{
		{0, 50 * CoinValue},
		{1, 105_000_000 * CoinValue},
		{HalvingInterval - 1, 2_500_000_000},
		{HalvingInterval, 1_250_000_000},
		{HalvingInterval + 1, 1_250_000_000},
	}
	for _, c := range cases {
		if got := c.h.Subsidy(); got != c.want {
			t.Fatalf("Height(%d).Subsidy()=%d, want %d", c.h, got, c.want)
		}
	}
}

func TestHeightStartingSat(t *testing.T) {
	if got := Height(0).StartingSat(); got != 0 {
		t.Fatalf("got=%d, want 0", got)
	}
	if got := Height(1).StartingSat(); got != 5_000_000_000 {
		t.Fatalf("got=%d, want 5000000000", got)
	}
}

// TestSupplySumsToSupply is property 1 of spec.md §8: the sum of every
// epoch's subsidy contribution across the full schedule equals Supply.
// (Summing per-block would take 67M iterations; subsidy is constant
// within an epoch, so summing epoch*HalvingInterval is equivalent and
// exercises the exact construction in buildStartingSats.)
func TestSupplySumsToSupply(t *testing.T) {
	var total uint64
	for e := Epoch(0); e < FirstPostSubsidyEpoch; e++ {
		contribution := uint64(HalvingInterval) * e.Subsidy()
		if e == 0 {
			contribution += Epoch0Offset
		}
		total += contribution
	}
	if total != Supply {
		t.Fatalf("cumulative issuance = %d, want Supply %d", total, Supply)
	}
	if got := uint64(Epoch(FirstPostSubsidyEpoch).StartingSat()); got != Supply {
		t.Fatalf("Epoch(32).StartingSat() = %d, want Supply %d", got, Supply)
	}
}

// TestStartingSatRoundTrip is property 2 of spec.md §8, sampled rather
// than run over the full [0, 67_200_000) range to keep the suite fast.
func TestStartingSatRoundTrip(t *testing.T) {
	heights := []Height{0, 1, 2, 100, 6_929_999, 6_930_000, 2_100_000, 2_100_001, 4_200_000, 20_160, 67_199_999}
	for _, h := range heights {
		sat := h.StartingSat()
		if got := sat.Height(); got != h {
			t.Fatalf("height=%d: StartingSat().Height()=%d, want %d (sat=%d)", h, got, h, sat)
		}
	}
}

func TestDegreeRoundTrip(t *testing.T) {
	heights := []Height{0, 1, 2, 100, 20_159, 20_160, 2_100_000, 12_600_000, 12_600_001}
	for _, h := range heights {
		sat := h.StartingSat()
		d := sat.Degree()
		formatted := d.String()
		parsed, err := Parse(formatted)
		if err != nil {
			t.Fatalf("height=%d: Parse(%q) error: %v", h, formatted, err)
		}
		if parsed != sat {
			t.Fatalf("height=%d: parse(format(degree))=%d, want %d", h, parsed, sat)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	sats := []Sat{0, 1, 26, 27, Last, 1_000_000, Supply / 2}
	for _, s := range sats {
		name := s.Name()
		parsed, err := Parse(name)
		if err != nil {
			t.Fatalf("sat=%d: Parse(%q) error: %v", s, name, err)
		}
		if parsed != s {
			t.Fatalf("sat=%d: parse(name(sat))=%d, want %d", s, parsed, s)
		}
	}
}

func TestRarity(t *testing.T) {
	cases := []struct {
		sat  Sat
		want Rarity
	}{
		{0, Mythic},
		{1, Common},
		{Height(0).StartingSat(), Mythic},
		{Epoch(1).StartingSat(), Epic}, // first sat of epoch 1, but not of a cycle (cycle 0 spans epochs 0-5)
	}
	for _, c := range cases {
		if got := c.sat.Rarity(); got != c.want {
			t.Fatalf("sat=%d: Rarity()=%s, want %s", c.sat, got, c.want)
		}
	}
}

func TestRarityMatchesCommon(t *testing.T) {
	sats := []Sat{0, 1, 2, 50 * CoinValue, 50*CoinValue + 1, Epoch(1).StartingSat(), Epoch(1).StartingSat() + 1}
	for _, s := range sats {
		want := s.Rarity() == Common
		if got := s.Common(); got != want {
			t.Fatalf("sat=%d: Common()=%v, want %v (rarity=%s)", s, got, want, s.Rarity())
		}
	}
}

func TestDegreeExample(t *testing.T) {
	// spec.md E6: "5°2099999′6719″0‴" parses to 20_999_999_976_899_999.
	got, err := Parse("5°2099999′6719″0‴")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != 20_999_999_976_899_999 {
		t.Fatalf("got=%d, want 20999999976899999", got)
	}
	formatted := got.Degree().String()
	reparsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", formatted, err)
	}
	if reparsed != got {
		t.Fatalf("round trip mismatch: got=%d, want %d", reparsed, got)
	}
}

func TestParseInteger(t *testing.T) {
	got, err := Parse("2099999997690000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2_099_999_997_690_000 {
		t.Fatalf("got=%d", got)
	}
	if _, err := Parse("99999999999999999999"); err == nil {
		t.Fatal("want error for out-of-range integer")
	}
}

func TestParsePercentile(t *testing.T) {
	got, err := Parse("0%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("got=%d, want 0", got)
	}
	got, err = Parse("100%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Last {
		t.Fatalf("got=%d, want Last=%d", got, Last)
	}
}

func TestParseDecimal(t *testing.T) {
	got, err := Parse("0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("got=%d, want 0", got)
	}
	if _, err := Parse("0.50000000000"); err == nil {
		t.Fatal("want BlockOffset error for offset >= height 0 subsidy")
	}
}

func TestParseNameInvalidCharacter(t *testing.T) {
	if _, err := Parse("0a"); err == nil {
		t.Fatal("want error mixing digits and letters")
	}
}
