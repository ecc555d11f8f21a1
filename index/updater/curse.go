package updater

// CurseReason enumerates why a new inscription is cursed, in the exact
// priority order spec.md §4.5 Phase A.5 specifies: the first matching
// rule wins.
type CurseReason int

const (
	CurseNone CurseReason = iota
	CurseUnrecognizedEvenField
	CurseDuplicateField
	CurseIncompleteField
	CurseNotInFirstInput
	CurseNotAtOffsetZero
	CursePointer
	CursePushnum
	CurseStutter
	CurseReinscription
)

func (c CurseReason) String() string {
	switch c {
	case CurseNone:
		return "none"
	case CurseUnrecognizedEvenField:
		return "unrecognized_even_field"
	case CurseDuplicateField:
		return "duplicate_field"
	case CurseIncompleteField:
		return "incomplete_field"
	case CurseNotInFirstInput:
		return "not_in_first_input"
	case CurseNotAtOffsetZero:
		return "not_at_offset_zero"
	case CursePointer:
		return "pointer"
	case CursePushnum:
		return "pushnum"
	case CurseStutter:
		return "stutter"
	case CurseReinscription:
		return "reinscription"
	default:
		return "unknown"
	}
}

// classifyCurse applies spec.md's curse priority order for an
// envelope at (inputIndex, offsetWithinInput), given whether another
// envelope already claimed this tx-relative offset and, if so, whether
// that prior claimant was itself cursed or vindicated (which
// suppresses the Reinscription curse per the "reinscription
// refinement").
func classifyCurse(
	unrecognizedEvenField bool,
	duplicateField bool,
	incompleteField bool,
	inputIndex int,
	offsetWithinInput int,
	hasPointer bool,
	pushnum bool,
	stutter bool,
	priorCount int,
	priorCursedOrVindicated bool,
) CurseReason {
	switch {
	case unrecognizedEvenField:
		return CurseUnrecognizedEvenField
	case duplicateField:
		return CurseDuplicateField
	case incompleteField:
		return CurseIncompleteField
	case inputIndex != 0:
		return CurseNotInFirstInput
	case offsetWithinInput != 0:
		return CurseNotAtOffsetZero
	case hasPointer:
		return CursePointer
	case pushnum:
		return CursePushnum
	case stutter:
		return CurseStutter
	case priorCount > 1:
		return CurseReinscription
	case priorCount == 1 && !priorCursedOrVindicated:
		return CurseReinscription
	default:
		return CurseNone
	}
}
