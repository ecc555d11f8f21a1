package updater

import (
	"rubin.dev/node/envelope"
	"rubin.dev/node/index/store"
)

// Flotsam is an inscription in flight within the block currently being
// processed: either one already on the chain being carried to a new
// location (Origin.IsOld), or one newly admitted from this
// transaction's envelopes (Origin.IsOld == false).
type Flotsam struct {
	ID     envelope.InscriptionID
	Offset uint64
	Origin Origin
}

// Origin is the tagged union original_source/inscription_updater.rs
// models as enum Origin { New{..}, Old{..} }; Go has no sum type, so
// IsOld selects which field group is meaningful.
type Origin struct {
	IsOld bool

	// Old
	OldSatpoint store.SatPoint

	// New
	Cursed          bool
	Fee             uint64
	Hidden          bool
	Parents         []envelope.InscriptionID
	Pointer         *uint64
	Reinscription   bool
	Unbound         bool
	Vindicated      bool
	ContentType     []byte
	ContentEncoding []byte
	Body            []byte
	Metadata        []byte
	Metaprotocol    []byte
	Rune            []byte
	Delegate        *envelope.InscriptionID
}
