// Package envelope extracts inscription envelopes from a transaction's
// witness stack, grounded on the ORD/ORC-20 envelope framing used by
// b-open-io-go-sdk's Inscribe helper (OP_FALSE OP_IF "ord" ... OP_ENDIF)
// and tokenized with github.com/btcsuite/btcd/txscript, the same
// script-decoding library the leanlp-BTC-coinjoin example depends on.
package envelope

import "github.com/btcsuite/btcd/wire"

// Protocol is the envelope's recognition tag, always "ord".
const Protocol = "ord"

// Tag is a single-byte even/odd field discriminant within an envelope.
// Even tags must be understood by a compliant parser; an even tag this
// parser doesn't recognize sets UnrecognizedEvenField.
type Tag byte

const (
	TagContentType     Tag = 1
	TagPointer         Tag = 2
	TagParent          Tag = 3
	TagMetadata        Tag = 5
	TagMetaprotocol    Tag = 7
	TagContentEncoding Tag = 9
	TagDelegate        Tag = 11
	TagRune            Tag = 13
	TagNop             Tag = 255
)

// InscriptionID identifies an inscription by its creating transaction
// and the envelope index within that transaction.
type InscriptionID struct {
	TxID  [32]byte
	Index uint32
}

// Envelope is a single parsed inscription envelope and its positional metadata.
type Envelope struct {
	ContentType     []byte
	ContentEncoding []byte
	Body            []byte
	Pointer         *uint64
	Parents         []InscriptionID
	Delegate        *InscriptionID
	Metadata        []byte // raw CBOR, decoded lazily by DecodeMetadata
	Metaprotocol    []byte
	Rune            []byte

	UnrecognizedEvenField bool
	DuplicateField        bool
	IncompleteField       bool

	Input   int // input index this envelope was found in
	Offset  int // envelope index within that input's witness script
	Pushnum bool
	Stutter bool
}

// Hidden reports whether this inscription is excluded from
// home_inscriptions: no content type, or audio/video media. The body is
// not inspected.
func (e Envelope) Hidden() bool {
	if len(e.ContentType) == 0 {
		return true
	}
	return isHiddenContentType(string(e.ContentType))
}

// ParseTransaction extracts every inscription envelope carried by tx's
// witness stacks, in (input, offset-within-input) order.
func ParseTransaction(tx *wire.MsgTx) []Envelope {
	var out []Envelope
	for i, in := range tx.TxIn {
		envelopes := parseWitness(in.Witness)
		for j := range envelopes {
			envelopes[j].Input = i
			envelopes[j].Offset = j
			out = append(out, envelopes[j])
		}
	}
	return out
}
