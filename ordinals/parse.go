package ordinals

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind enumerates the structured reasons a sat specifier failed to parse.
type ErrorKind int

const (
	ErrIntegerRange ErrorKind = iota
	ErrNameRange
	ErrNameCharacter
	ErrPercentile
	ErrBlockOffset
	ErrMissingPeriod
	ErrTrailingCharacters
	ErrMissingDegree
	ErrMissingMinute
	ErrMissingSecond
	ErrPeriodOffset
	ErrEpochOffset
	ErrEpochPeriodMismatch
	ErrParseInt
	ErrParseDecimal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIntegerRange:
		return "invalid integer range"
	case ErrNameRange:
		return "invalid name range"
	case ErrNameCharacter:
		return "invalid character in name"
	case ErrPercentile:
		return "invalid percentile"
	case ErrBlockOffset:
		return "invalid block offset"
	case ErrMissingPeriod:
		return "missing period"
	case ErrTrailingCharacters:
		return "trailing character"
	case ErrMissingDegree:
		return "missing degree symbol"
	case ErrMissingMinute:
		return "missing minute symbol"
	case ErrMissingSecond:
		return "missing second symbol"
	case ErrPeriodOffset:
		return "invalid period offset"
	case ErrEpochOffset:
		return "invalid epoch offset"
	case ErrEpochPeriodMismatch:
		return "relationship between epoch offset and period offset must be multiple of 3360"
	case ErrParseInt:
		return "invalid integer"
	case ErrParseDecimal:
		return "invalid decimal"
	default:
		return "unknown error"
	}
}

// ParseError is returned by Parse when a sat specifier is malformed.
type ParseError struct {
	Input string
	Kind  ErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse sat %q: %s", e.Input, e.Kind)
}

func parseErr(input string, kind ErrorKind) error {
	return &ParseError{Input: input, Kind: kind}
}

// Parse converts a sat specifier string into a Sat. Five syntaxes are
// accepted, distinguished in this order by a prefix/contents test: a
// name (contains a lowercase ascii letter), a degree (contains '°'), a
// percentile (contains '%'), a decimal height.offset (contains '.'), or
// a plain integer.
func Parse(s string) (Sat, error) {
	switch {
	case containsLower(s):
		return parseName(s)
	case strings.Contains(s, "°"):
		return parseDegree(s)
	case strings.Contains(s, "%"):
		return parsePercentile(s)
	case strings.Contains(s, "."):
		return parseDecimal(s)
	default:
		return parseInteger(s)
	}
}

func containsLower(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

func parseInteger(s string) (Sat, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}
	if n > uint64(Last) {
		return 0, parseErr(s, ErrIntegerRange)
	}
	return Sat(n), nil
}

func parseName(s string) (Sat, error) {
	var x uint64
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return 0, parseErr(s, ErrNameCharacter)
		}
		x = x*26 + uint64(c) - uint64('a') + 1
		if x > Supply {
			return 0, parseErr(s, ErrNameRange)
		}
	}
	return Sat(Supply - x), nil
}

func parseDecimal(s string) (Sat, error) {
	heightStr, offsetStr, ok := strings.Cut(s, ".")
	if !ok {
		return 0, parseErr(s, ErrMissingPeriod)
	}
	h, err := strconv.ParseUint(heightStr, 10, 32)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}
	height := Height(h)
	offset, err := strconv.ParseUint(offsetStr, 10, 64)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}
	if offset >= height.Subsidy() {
		return 0, parseErr(s, ErrBlockOffset)
	}
	return height.StartingSat() + Sat(offset), nil
}

func parsePercentile(s string) (Sat, error) {
	if !strings.HasSuffix(s, "%") {
		return 0, parseErr(s, ErrPercentile)
	}
	body := s[:len(s)-1]
	pct, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, parseErr(s, ErrParseDecimal)
	}
	if pct < 0 {
		return 0, parseErr(s, ErrPercentile)
	}
	last := float64(Last)
	n := (pct / 100 * last)
	rounded := roundHalfAwayFromZero(n)
	if rounded > last {
		return 0, parseErr(s, ErrPercentile)
	}
	n64 := uint64(rounded)
	if n64 > uint64(Last) {
		// float64(Last) rounds up to Supply at this magnitude.
		n64 = uint64(Last)
	}
	return Sat(n64), nil
}

func roundHalfAwayFromZero(n float64) float64 {
	if n < 0 {
		return -roundHalfAwayFromZero(-n)
	}
	frac := n - float64(int64(n))
	if frac >= 0.5 {
		return float64(int64(n)) + 1
	}
	return float64(int64(n))
}

func parseDegree(s string) (Sat, error) {
	cycleStr, rest, ok := strings.Cut(s, "°")
	if !ok {
		return 0, parseErr(s, ErrMissingDegree)
	}
	cycleNumber, err := strconv.ParseUint(cycleStr, 10, 32)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}

	epochOffsetStr, rest, ok := strings.Cut(rest, "′")
	if !ok {
		return 0, parseErr(s, ErrMissingMinute)
	}
	epochOffset64, err := strconv.ParseUint(epochOffsetStr, 10, 32)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}
	epochOffset := uint32(epochOffset64)
	if epochOffset >= HalvingInterval {
		return 0, parseErr(s, ErrEpochOffset)
	}

	periodOffsetStr, rest, ok := strings.Cut(rest, "″")
	if !ok {
		return 0, parseErr(s, ErrMissingSecond)
	}
	periodOffset64, err := strconv.ParseUint(periodOffsetStr, 10, 32)
	if err != nil {
		return 0, parseErr(s, ErrParseInt)
	}
	periodOffset := uint32(periodOffset64)
	if periodOffset >= DiffChangeInterval {
		return 0, parseErr(s, ErrPeriodOffset)
	}

	cycleStartEpoch := uint32(cycleNumber) * CycleEpochs

	const halvingIncrement = HalvingInterval % DiffChangeInterval

	// For valid degrees the relationship between epoch_offset and
	// period_offset increments by halvingIncrement every halving.
	relationship := periodOffset + HalvingInterval*CycleEpochs - epochOffset
	if relationship%halvingIncrement != 0 {
		return 0, parseErr(s, ErrEpochPeriodMismatch)
	}

	epochsSinceCycleStart := (relationship % DiffChangeInterval) / halvingIncrement
	epoch := cycleStartEpoch + epochsSinceCycleStart
	height := Height(epoch*HalvingInterval + epochOffset)

	var blockOffset uint64
	if rest != "" {
		blockOffsetStr, trailing, ok := strings.Cut(rest, "‴")
		if ok {
			v, err := strconv.ParseUint(blockOffsetStr, 10, 64)
			if err != nil {
				return 0, parseErr(s, ErrParseInt)
			}
			blockOffset = v
			rest = trailing
		}
	}
	if rest != "" {
		return 0, parseErr(s, ErrTrailingCharacters)
	}

	if blockOffset >= height.Subsidy() {
		return 0, parseErr(s, ErrBlockOffset)
	}

	return height.StartingSat() + Sat(blockOffset), nil
}
