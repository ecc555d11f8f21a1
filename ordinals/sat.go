package ordinals

// Sat is the ordinal number of a single indivisible unit of the base
// currency, in [0, Supply).
type Sat uint64

// Last is the highest valid sat number.
const Last Sat = Supply - 1

// Epoch returns the epoch s was issued in.
func (s Sat) Epoch() Epoch {
	return EpochFromSat(s)
}

// EpochPosition returns s's offset from the first sat of its epoch.
func (s Sat) EpochPosition() uint64 {
	return uint64(s) - uint64(s.Epoch().StartingSat())
}

// Height returns the height s was issued at: the exact inverse of
// Height.StartingSat, special-cased for heights 0 and 1 the same way
// the forward direction is.
func (s Sat) Height() Height {
	epoch := s.Epoch()
	if epoch > 0 {
		return epoch.StartingHeight() + Height(s.EpochPosition()/epoch.Subsidy())
	}

	position := s.EpochPosition()
	switch {
	case position < 50*CoinValue:
		return 0
	case position < (105_000_000+50)*CoinValue:
		return 1
	default:
		return Height((position - Epoch0Offset) / epoch.Subsidy())
	}
}

// Third returns s's position within its issuing block.
func (s Sat) Third() uint64 {
	epoch := s.Epoch()
	if epoch > 0 {
		return s.EpochPosition() % epoch.Subsidy()
	}

	position := s.EpochPosition()
	switch {
	case position < 50*CoinValue:
		return position
	case position < (105_000_000+50)*CoinValue:
		return position - 50*CoinValue
	default:
		return (position - Epoch0Offset) % epoch.Subsidy()
	}
}

// Period returns the difficulty-adjustment period s's issuing block falls in.
func (s Sat) Period() uint32 {
	return uint32(s.Height()) / DiffChangeInterval
}

// Cycle returns the cycle s's epoch falls in.
func (s Sat) Cycle() uint32 {
	return uint32(s.Epoch()) / CycleEpochs
}

// Nineball reports whether s falls in the ninth 25-coin subsidy slice of
// epoch 0, a cosmetic charm carried over from the chain this was forked from.
func (s Sat) Nineball() bool {
	return uint64(s) >= 25*CoinValue*9+Epoch0Offset && uint64(s) < 25*CoinValue*10+Epoch0Offset
}

// Coin reports whether s is the first sat of a whole coin.
func (s Sat) Coin() bool {
	return uint64(s)%CoinValue == 0
}

// Degree returns s's (hour, minute, second, third) rendering.
func (s Sat) Degree() Degree {
	height := uint32(s.Height())
	return Degree{
		Hour:   height / (CycleEpochs * HalvingInterval),
		Minute: height % HalvingInterval,
		Second: height % DiffChangeInterval,
		Third:  s.Third(),
	}
}

// Rarity classifies s by which structural boundaries it sits on.
func (s Sat) Rarity() Rarity {
	d := s.Degree()
	switch {
	case s == 0:
		return Mythic
	case d.Minute == 0 && d.Second == 0 && d.Third == 0:
		return Legendary
	case d.Minute == 0 && d.Third == 0:
		return Epic
	case d.Second == 0 && d.Third == 0:
		return Rare
	case d.Third == 0:
		return Uncommon
	default:
		return Common
	}
}

// Common reports whether s.Rarity() == Common, without building a Degree.
// Sat.Rarity is comparatively expensive and is called on every new
// inscription's sat when tracking is enabled, so the hot path gets a
// cheaper equivalent predicate.
func (s Sat) Common() bool {
	if s > 0 && uint64(s) < 50*CoinValue {
		return true
	}
	if uint64(s) > 50*CoinValue && uint64(s) < (105_000_000+50)*CoinValue {
		return true
	}
	epoch := s.Epoch()
	return (uint64(s)-uint64(epoch.StartingSat()))%epoch.Subsidy() != 0
}

// Name renders s as its reverse-base-26 name, e.g. Sat(0).Name() == "erssqpdkejvd".
func (s Sat) Name() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	x := Supply - uint64(s)
	buf := make([]byte, 0, 15)
	for x > 0 {
		buf = append(buf, alphabet[(x-1)%26])
		x = (x - 1) / 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Charms returns the charm bitfield attached to s by virtue of its
// numeric position: Coin, Nineball, and its rarity flag (Common
// contributes no flag).
func (s Sat) Charms() Charm {
	var c Charm
	if s.Nineball() {
		c |= CharmNineball
	}
	if s.Coin() {
		c |= CharmCoin
	}
	switch s.Rarity() {
	case Epic:
		c |= CharmEpic
	case Legendary:
		c |= CharmLegendary
	case Mythic:
		c |= CharmMythic
	case Rare:
		c |= CharmRare
	case Uncommon:
		c |= CharmUncommon
	}
	return c
}
