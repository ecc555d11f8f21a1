package envelope

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	opFalse = txscript.OP_0
	opIf    = txscript.OP_IF
	opEndIf = txscript.OP_ENDIF
)

// isPushnum reports whether opcode op is one of the small-integer push
// opcodes (OP_1..OP_16) rather than a literal data push; wallets
// sometimes minify a single-byte push into one of these, which the
// updater must still classify distinctly via the Pushnum curse rule.
func isPushnum(op byte) bool {
	return op >= txscript.OP_1 && op <= txscript.OP_16
}

func pushnumValue(op byte) byte {
	return op - txscript.OP_1 + 1
}

// tapscript returns the script-path spend's script, dropping a trailing
// taproot annex if present. A witness with fewer than two items carries
// no script (key-path spend) and yields no envelopes.
func tapscript(w wire.TxWitness) []byte {
	items := [][]byte(w)
	if len(items) > 0 && len(items[len(items)-1]) > 0 && items[len(items)-1][0] == txscript.TaprootAnnexTag {
		items = items[:len(items)-1]
	}
	if len(items) < 2 {
		return nil
	}
	return items[len(items)-2]
}

type token struct {
	opcode  byte
	data    []byte
	isPush  bool // true if this token represents a data-like push (literal or pushnum)
	pushnum bool
}

// tokenize walks script into a flat list of pushes/opcodes the envelope
// scanner consumes; it stops (without error) at the first malformed
// instruction, since a truncated/invalid script simply yields no
// further envelopes.
func tokenize(script []byte) []token {
	var out []token
	tok := txscript.MakeScriptTokenizer(0, script)
	for tok.Next() {
		op := tok.Opcode()
		switch {
		case op == opFalse:
			out = append(out, token{opcode: op, data: nil, isPush: true})
		case isPushnum(op):
			out = append(out, token{opcode: op, data: []byte{pushnumValue(op)}, isPush: true, pushnum: true})
		case op == opIf || op == opEndIf:
			out = append(out, token{opcode: op})
		default:
			if tok.Data() != nil || op > txscript.OP_0 && op <= txscript.OP_PUSHDATA4 {
				out = append(out, token{opcode: op, data: tok.Data(), isPush: true})
			} else {
				out = append(out, token{opcode: op})
			}
		}
	}
	return out
}

// parseWitness scans a single input's witness stack for every
// OP_FALSE OP_IF "ord" ... OP_ENDIF envelope it contains, in order.
func parseWitness(w wire.TxWitness) []Envelope {
	script := tapscript(w)
	if script == nil {
		return nil
	}
	tokens := tokenize(script)

	var envelopes []Envelope
	i := 0
	for i < len(tokens) {
		if tokens[i].opcode != opFalse || i+1 >= len(tokens) || tokens[i+1].opcode != opIf {
			i++
			continue
		}
		body := i + 2
		if body >= len(tokens) || !tokens[body].isPush || !bytes.Equal(tokens[body].data, []byte(Protocol)) {
			i++
			continue
		}
		env, next := parseEnvelopeBody(tokens, body+1)
		envelopes = append(envelopes, env)
		i = next
	}
	return envelopes
}

// parseEnvelopeBody consumes tag/value pairs starting at idx until
// OP_ENDIF or the token stream runs out, returning the parsed envelope
// and the index just past OP_ENDIF.
func parseEnvelopeBody(tokens []token, idx int) (Envelope, int) {
	var env Envelope
	seen := map[Tag]bool{}
	var bodyChunks [][]byte
	inBody := false
	stutterChecked := false

	for idx < len(tokens) {
		tkn := tokens[idx]
		if tkn.opcode == opEndIf {
			idx++
			break
		}
		if inBody {
			if !tkn.isPush {
				idx++
				continue
			}
			if !stutterChecked {
				stutterChecked = true
				if len(tkn.data) == 0 && idx+1 < len(tokens) && tokens[idx+1].isPush && len(tokens[idx+1].data) == 0 {
					env.Stutter = true
				}
			}
			bodyChunks = append(bodyChunks, tkn.data)
			idx++
			continue
		}

		if !tkn.isPush {
			idx++
			continue
		}
		if tkn.pushnum {
			env.Pushnum = true
		}
		if len(tkn.data) == 0 {
			// OP_0 marks the start of the body.
			inBody = true
			idx++
			continue
		}
		tag := Tag(tkn.data[0])
		idx++
		if idx >= len(tokens) || !tokens[idx].isPush {
			env.IncompleteField = true
			continue
		}
		value := tokens[idx].data
		if tokens[idx].pushnum {
			env.Pushnum = true
		}
		idx++

		if seen[tag] {
			env.DuplicateField = true
			continue
		}
		seen[tag] = true
		assignField(&env, tag, value)
	}

	env.Body = bytes.Join(bodyChunks, nil)
	return env, idx
}

func assignField(env *Envelope, tag Tag, value []byte) {
	switch tag {
	case TagContentType:
		env.ContentType = value
	case TagContentEncoding:
		env.ContentEncoding = value
	case TagPointer:
		v := decodeLEUint64(value)
		env.Pointer = &v
	case TagParent:
		if id, ok := decodeInscriptionID(value); ok {
			env.Parents = append(env.Parents, id)
		}
	case TagDelegate:
		if id, ok := decodeInscriptionID(value); ok {
			env.Delegate = &id
		}
	case TagMetadata:
		env.Metadata = value
	case TagMetaprotocol:
		env.Metaprotocol = value
	case TagRune:
		env.Rune = value
	default:
		if byte(tag)%2 == 0 {
			env.UnrecognizedEvenField = true
		}
	}
}

func decodeLEUint64(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		if i >= 8 {
			break
		}
		v |= uint64(c) << (8 * uint(i))
	}
	return v
}

// decodeInscriptionID parses the "txid little-endian || index" encoding
// ord uses for parent/delegate references: 36 bytes, or 32 bytes with
// no index suffix meaning index 0. Any other length is rejected.
func decodeInscriptionID(b []byte) (InscriptionID, bool) {
	if len(b) != 32 && len(b) != 36 {
		return InscriptionID{}, false
	}
	var id InscriptionID
	for i := 0; i < 32; i++ {
		id.TxID[i] = b[31-i]
	}
	if len(b) == 36 {
		id.Index = uint32(b[32]) | uint32(b[33])<<8 | uint32(b[34])<<16 | uint32(b[35])<<24
	}
	return id, true
}
