// Package ordinals implements the pure sat-numbering arithmetic of the
// Fractal-parameterized chain: the mapping between a sat's ordinal number
// and its issuing height, epoch, degree, rarity, and name.
//
// Every exported function here is pure and total over its documented
// domain; none of them touch the store, the updater, or any I/O.
package ordinals

import "fmt"

// CoinValue is the number of indivisible units ("sats") per whole coin.
const CoinValue = 100_000_000

// Supply is the total number of sats that will ever be issued.
const Supply = 20_999_999_976_900_000

// HalvingInterval is the number of blocks between subsidy halvings.
const HalvingInterval = 2_100_000

// DiffChangeInterval is the number of blocks in a difficulty-adjustment
// period; the first sat of a period is Rare.
const DiffChangeInterval = 20_160

// CycleEpochs is the number of epochs in a cycle; the first sat of a
// cycle is Legendary.
const CycleEpochs = 6

// Epoch0Offset is the one-time pre-mine lump folded into the first sat
// issued at height 1.
const Epoch0Offset = 10_500_000_000_000_000

// FirstPostSubsidyEpoch is the first epoch that pays no block subsidy.
const FirstPostSubsidyEpoch = 32

func init() {
	if (CycleEpochs*uint64(HalvingInterval))%DiffChangeInterval != 0 {
		panic("ordinals: CycleEpochs does not evenly divide DiffChangeInterval relationship")
	}
	if len(startingSats) != FirstPostSubsidyEpoch+1 {
		panic(fmt.Sprintf("ordinals: expected %d starting-sat entries, got %d", FirstPostSubsidyEpoch+1, len(startingSats)))
	}
	if startingSats[FirstPostSubsidyEpoch] != Supply {
		panic("ordinals: final starting-sat entry must equal Supply")
	}
}
