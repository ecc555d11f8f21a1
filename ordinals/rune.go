package ordinals

import "math/big"

// Rune is a base-26 rune name rendered in [0, 2^128). Values are held as
// *big.Int since Go has no native 128-bit integer, the same way the
// teacher's block-index entries hold cumulative chain work as *big.Int.
type Rune struct {
	n *big.Int
}

// RuneN constructs a Rune from its numeric value.
func RuneN(n *big.Int) Rune {
	return Rune{n: new(big.Int).Set(n)}
}

// N returns the rune's numeric value.
func (r Rune) N() *big.Int {
	return new(big.Int).Set(r.n)
}

// reserved is the first reserved rune number; names at or above it are
// reserved for protocol use, not available for ordinary minting.
var reserved = mustBig("6402364363415443603228541259936211926")

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("ordinals: invalid reserved rune constant")
	}
	return n
}

// IsReserved reports whether r is in the reserved range.
func (r Rune) IsReserved() bool {
	return r.n.Cmp(reserved) >= 0
}

// ReservedRune returns the reserved rune minted for transaction tx of
// block, i.e. reserved + (block<<32 | tx).
func ReservedRune(block uint64, tx uint32) Rune {
	offset := new(big.Int).Lsh(new(big.Int).SetUint64(block), 32)
	offset.Or(offset, new(big.Int).SetUint64(uint64(tx)))
	return Rune{n: new(big.Int).Add(reserved, offset)}
}

// String renders r as its base-26 name ("a".."z", "aa"..).
func (r Rune) String() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	max128, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	if r.n.Cmp(max128) == 0 {
		return "bcgdenlqrqwdslrugsnlbtmfijav"
	}

	n := new(big.Int).Add(r.n, big.NewInt(1))
	var symbol []byte
	twentySix := big.NewInt(26)
	one := big.NewInt(1)
	for n.Sign() > 0 {
		n.Sub(n, one)
		var rem big.Int
		var q big.Int
		q.DivMod(n, twentySix, &rem)
		symbol = append(symbol, alphabet[rem.Int64()])
		n = &q
	}
	for i, j := 0, len(symbol)-1; i < j; i, j = i+1, j-1 {
		symbol[i], symbol[j] = symbol[j], symbol[i]
	}
	return string(symbol)
}

// ParseRune parses a rune name back into its numeric value.
func ParseRune(s string) (Rune, error) {
	x := new(big.Int)
	twentySix := big.NewInt(26)
	for i, c := range s {
		if i > 0 {
			x.Add(x, big.NewInt(1))
		}
		x.Mul(x, twentySix)
		if c < 'a' || c > 'z' {
			return Rune{}, parseErr(s, ErrNameCharacter)
		}
		x.Add(x, big.NewInt(int64(c-'a')))
	}
	return Rune{n: x}, nil
}

// runeSteps are the rune numbers bounding the twelve intervals of the
// minting schedule: runeSteps[i] is the smallest rune whose name has
// i+1 letters ("a", "aa", "aaa", ...).
var runeSteps = []*big.Int{
	big.NewInt(0),
	big.NewInt(26),
	big.NewInt(702),
	big.NewInt(18278),
	big.NewInt(475254),
	big.NewInt(12356630),
	big.NewInt(321272406),
	big.NewInt(8353082582),
	big.NewInt(217180147158),
	mustBig("5646683826134"),
	mustBig("146813779479510"),
	mustBig("3817158266467286"),
	mustBig("99246114928149462"),
}

// FractalStartInterval is the block interval scale used to derive the
// first height at which rune etching is permitted on a given network.
const FractalStartInterval = 21_000

// runeInterval is the number of blocks in each of the twelve minting steps.
const runeInterval = HalvingInterval / 12

// FirstRuneHeight returns the first height at which rune etching is
// permitted on the network named by networkScale (the caller-supplied
// per-network multiplier of FractalStartInterval: 4 for mainnet, 12 for
// testnet, 0 for anything else, per the chain descriptor it is wired
// from).
func FirstRuneHeight(networkScale uint32) uint32 {
	return FractalStartInterval * networkScale
}

// RuneMinNameAtHeight returns the minimum rune number mintable at height
// using the minting schedule anchored at start (the network's
// FirstRuneHeight). Before start it returns the longest-name step; at or
// after start+HalvingInterval it returns 0; in between it linearly
// interpolates between adjacent steps across runeInterval-block windows.
func RuneMinNameAtHeight(start uint32, height Height) Rune {
	offset := uint64(height) + 1

	end := uint64(start) + HalvingInterval

	if offset < uint64(start) {
		return Rune{n: new(big.Int).Set(runeSteps[12])}
	}
	if offset >= end {
		return Rune{n: big.NewInt(0)}
	}

	progress := offset - uint64(start)
	length := 12 - progress/runeInterval

	stepEnd := runeSteps[length-1]
	stepStart := runeSteps[length]
	remainder := progress % runeInterval

	// stepStart - (stepStart-stepEnd)*remainder/runeInterval
	diff := new(big.Int).Sub(stepStart, stepEnd)
	diff.Mul(diff, new(big.Int).SetUint64(remainder))
	diff.Div(diff, new(big.Int).SetUint64(runeInterval))
	result := new(big.Int).Sub(stepStart, diff)
	return Rune{n: result}
}
