package updater

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"rubin.dev/node/envelope"
	"rubin.dev/node/index/store"
	"rubin.dev/node/ordinals"
)

// offsetEntry tracks, for one tx-relative offset, the first inscription
// that claimed it and how many envelopes in total have landed there —
// inscribed_offsets in the original.
type offsetEntry struct {
	ID    envelope.InscriptionID
	Count int
}

type outputRange struct {
	start, end uint64
	vout       uint32
}

func isCoinbaseInput(in *wire.TxIn) bool {
	return in.PreviousOutPoint.Index == math.MaxUint32 && in.PreviousOutPoint.Hash == (chainhash.Hash{})
}

// indexTransaction is the per-transaction heart of the updater: Phase
// A walks inputs classifying envelopes into flotsam, Phase B
// normalizes parents and computes fees, Phase C distributes flotsam
// across outputs, Phase D re-resolves pointer-redirected placements,
// Phase E commits every placement, and Phase F disposes of leftovers
// (lost to the void for a coinbase, carried forward as a fee for
// anything else).
func (u *Updater) indexTransaction(ctx context.Context, stx *store.Tx, wireTx *wire.MsgTx) error {
	envs := envelope.ParseTransaction(wireTx)

	txid := wireTx.TxHash()
	var txidBytes [32]byte
	copy(txidBytes[:], txid[:])

	var totalOutputValue uint64
	for _, out := range wireTx.TxOut {
		totalOutputValue += uint64(out.Value)
	}

	var (
		totalInputValue uint64
		floating        []Flotsam
		inscribedOffsets = map[uint64]*offsetEntry{}
		envIdx          int
	)

	for inputIndex, in := range wireTx.TxIn {
		if isCoinbaseInput(in) {
			totalInputValue += ordinals.Height(u.height).Subsidy()
			continue
		}

		prevOp := store.OutPoint{TxID: [32]byte(in.PreviousOutPoint.Hash), Vout: in.PreviousOutPoint.Index}

		for _, existing := range stx.InscriptionsOnOutput(prevOp) {
			offset := totalInputValue + existing.Satpoint.Offset
			id, _ := idForSequence(stx, existing.Sequence)
			floating = append(floating, Flotsam{
				ID:     id,
				Offset: offset,
				Origin: Origin{IsOld: true, OldSatpoint: existing.Satpoint},
			})
			bumpOffset(inscribedOffsets, offset, id)
		}

		offsetForCurse := totalInputValue

		currentInputValue, err := u.resolveInputValue(ctx, stx, prevOp)
		if err != nil {
			return err
		}
		totalInputValue += currentInputValue

		for envIdx < len(envs) && envs[envIdx].Input == inputIndex {
			env := envs[envIdx]

			if err := stx.IncrementContentTypeCount(env.ContentType); err != nil {
				return err
			}

			priorCount := 0
			priorCursedOrVindicated := false
			if prior, ok := inscribedOffsets[offsetForCurse]; ok {
				priorCount = prior.Count
				if priorCount == 1 {
					if seq, ok := stx.GetSequenceNumberForID(prior.ID); ok {
						if entry, ok2, err := stx.GetEntry(seq); err == nil && ok2 {
							priorCursedOrVindicated = entry.Number < 0 || entry.Charms&uint16(ordinals.CharmVindicated) != 0
						}
					}
				}
			}

			curse := classifyCurse(
				env.UnrecognizedEvenField,
				env.DuplicateField,
				env.IncompleteField,
				inputIndex,
				env.Offset,
				env.Pointer != nil,
				env.Pushnum,
				env.Stutter,
				priorCount,
				priorCursedOrVindicated,
			)

			offsetFinal := offsetForCurse
			if env.Pointer != nil && *env.Pointer < totalOutputValue {
				offsetFinal = *env.Pointer
			}

			cursed := curse != CurseNone && !u.jubilant
			vindicated := curse != CurseNone && u.jubilant
			unbound := currentInputValue == 0 || curse == CurseUnrecognizedEvenField || env.UnrecognizedEvenField
			_, reinscription := inscribedOffsets[offsetFinal]

			id := envelope.InscriptionID{TxID: txidBytes, Index: uint32(envIdx)}

			floating = append(floating, Flotsam{
				ID:     id,
				Offset: offsetFinal,
				Origin: Origin{
					Cursed:          cursed,
					Hidden:          env.Hidden(),
					Parents:         env.Parents,
					Pointer:         env.Pointer,
					Reinscription:   reinscription,
					Unbound:         unbound,
					Vindicated:      vindicated,
					ContentType:     env.ContentType,
					ContentEncoding: env.ContentEncoding,
					Body:            env.Body,
					Metadata:        env.Metadata,
					Metaprotocol:    env.Metaprotocol,
					Rune:            env.Rune,
					Delegate:        env.Delegate,
				},
			})
			bumpOffset(inscribedOffsets, offsetFinal, id)

			envIdx++
		}
	}

	if u.IndexTransactions && len(envs) > 0 {
		var buf bytes.Buffer
		if err := wireTx.Serialize(&buf); err != nil {
			return fmt.Errorf("updater: serialize transaction: %w", err)
		}
		if err := stx.PutTransaction(txidBytes, buf.Bytes()); err != nil {
			return err
		}
	}

	potentialParents := make(map[envelope.InscriptionID]bool, len(floating))
	for _, f := range floating {
		potentialParents[f.ID] = true
	}
	for i := range floating {
		if floating[i].Origin.IsOld {
			continue
		}
		floating[i].Origin.Parents = filterParents(floating[i].Origin.Parents, potentialParents)
	}

	idCounter := uint64(0)
	for _, f := range floating {
		if !f.Origin.IsOld {
			idCounter++
		}
	}
	if idCounter > 0 {
		fee := (totalInputValue - totalOutputValue) / idCounter
		for i := range floating {
			if !floating[i].Origin.IsOld {
				floating[i].Origin.Fee = fee
			}
		}
	}

	isCoinbase := len(wireTx.TxIn) > 0 && isCoinbaseInput(wireTx.TxIn[0])
	ownInscriptionCnt := len(floating)
	if isCoinbase {
		floating = append(floating, u.flotsam...)
		u.flotsam = nil
	}

	sort.SliceStable(floating, func(i, j int) bool { return floating[i].Offset < floating[j].Offset })

	var placements []placement
	var ranges []outputRange
	var outputValue uint64
	inscriptionIdx := 0
	floatIdx := 0
	for vout, out := range wireTx.TxOut {
		end := outputValue + uint64(out.Value)
		for floatIdx < len(floating) && floating[floatIdx].Offset < end {
			sentToCoinbase := inscriptionIdx >= ownInscriptionCnt
			inscriptionIdx++
			newSatpoint := store.SatPoint{
				Outpoint: store.OutPoint{TxID: txidBytes, Vout: uint32(vout)},
				Offset:   floating[floatIdx].Offset - outputValue,
			}
			placements = append(placements, placement{
				flotsam:        floating[floatIdx],
				newSatpoint:    newSatpoint,
				sentToCoinbase: sentToCoinbase,
				scriptPubkey:   out.PkScript,
				outputValue:    u64ptr(uint64(out.Value)),
			})
			floatIdx++
		}
		ranges = append(ranges, outputRange{start: outputValue, end: end, vout: uint32(vout)})
		outputValue = end
		u.valueCache[store.OutPoint{TxID: txidBytes, Vout: uint32(vout)}] = uint64(out.Value)
	}

	for i := range placements {
		o := placements[i].flotsam.Origin
		if o.IsOld || o.Pointer == nil || *o.Pointer >= outputValue {
			continue
		}
		for _, r := range ranges {
			if *o.Pointer >= r.start && *o.Pointer < r.end {
				placements[i].flotsam.Offset = *o.Pointer
				placements[i].newSatpoint = store.SatPoint{Outpoint: store.OutPoint{TxID: txidBytes, Vout: r.vout}, Offset: *o.Pointer - r.start}
				placements[i].scriptPubkey = wireTx.TxOut[r.vout].PkScript
				placements[i].outputValue = u64ptr(uint64(wireTx.TxOut[r.vout].Value))
				break
			}
		}
	}

	for _, p := range placements {
		if err := u.indexTransactionCommit(stx, nil, p); err != nil {
			return err
		}
	}

	leftover := floating[floatIdx:]
	if isCoinbase {
		for _, f := range leftover {
			newSatpoint := store.SatPoint{Outpoint: store.NullOutPoint, Offset: u.lostSats + f.Offset - outputValue}
			p := placement{flotsam: f, newSatpoint: newSatpoint, sentToCoinbase: true}
			if err := u.indexTransactionCommit(stx, nil, p); err != nil {
				return err
			}
		}
		u.lostSats += u.reward - outputValue
	} else {
		for _, f := range leftover {
			f.Offset = u.reward + f.Offset - outputValue
			u.flotsam = append(u.flotsam, f)
		}
		u.reward += totalInputValue - outputValue
	}

	return nil
}

func (u *Updater) resolveInputValue(ctx context.Context, stx *store.Tx, op store.OutPoint) (uint64, error) {
	if v, ok := u.valueCache[op]; ok {
		delete(u.valueCache, op)
		return v, nil
	}
	if v, ok := stx.GetOutpointValue(op); ok {
		if err := stx.DeleteOutpointValue(op); err != nil {
			return 0, err
		}
		return v, nil
	}
	if u.Values == nil {
		return 0, fmt.Errorf("updater: no value source for outpoint and no cached/stored value")
	}
	return u.Values.Value(ctx, op)
}

func idForSequence(stx *store.Tx, seq uint32) (envelope.InscriptionID, bool) {
	entry, ok, err := stx.GetEntry(seq)
	if err != nil || !ok {
		return envelope.InscriptionID{}, false
	}
	return entry.ID, true
}

func bumpOffset(m map[uint64]*offsetEntry, offset uint64, id envelope.InscriptionID) {
	e, ok := m[offset]
	if !ok {
		e = &offsetEntry{ID: id, Count: 0}
		m[offset] = e
	}
	e.Count++
}

// filterParents restricts purported parent references to ids actually
// floating within this transaction, deduplicating while preserving
// order — a reference to an inscription not spent in this same
// transaction can't establish parentage at creation time.
func filterParents(parents []envelope.InscriptionID, potential map[envelope.InscriptionID]bool) []envelope.InscriptionID {
	if len(parents) == 0 {
		return nil
	}
	seen := map[envelope.InscriptionID]bool{}
	out := parents[:0:0]
	for _, p := range parents {
		if seen[p] || !potential[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func u64ptr(v uint64) *uint64 { return &v }
