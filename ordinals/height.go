package ordinals

// Height is a block height.
type Height uint32

// Subsidy returns the block subsidy, in sats, paid at height h.
//
// Heights 0 and 1 are special-cased: height 0 pays the legacy 50-coin
// genesis reward (two epoch-0 subsidies), and height 1 pays exactly the
// one-time epoch-0 pre-mine lump, so that the cumulative supply issued
// by the first two blocks lines up with the starting-sat table.
func (h Height) Subsidy() uint64 {
	if h > 1 {
		return EpochFromHeight(h).Subsidy()
	}
	if h == 0 {
		return 50 * CoinValue
	}
	return 105_000_000 * CoinValue
}

// StartingSat returns the first sat issued at height h.
func (h Height) StartingSat() Sat {
	epoch := EpochFromHeight(h)
	epochStartingSat := epoch.StartingSat()
	epochStartingHeight := epoch.StartingHeight()

	if epoch != 0 {
		return epochStartingSat + Sat(uint64(h-epochStartingHeight)*epoch.Subsidy())
	}
	if h > 1 {
		return epochStartingSat + Sat(uint64(h-epochStartingHeight)*epoch.Subsidy()+Epoch0Offset)
	}
	if h == 0 {
		return 0
	}
	return Sat(50 * CoinValue)
}

// PeriodOffset returns h's position within its difficulty-adjustment period.
func (h Height) PeriodOffset() uint32 {
	return uint32(h) % DiffChangeInterval
}
