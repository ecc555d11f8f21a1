package updater

import (
	"encoding/hex"
	"fmt"

	"rubin.dev/node/envelope"
	"rubin.dev/node/index/events"
	"rubin.dev/node/index/store"
	"rubin.dev/node/ordinals"
	"rubin.dev/node/satrange"
)

// placement is everything indexTransaction resolves about where one
// flotsam ends up, handed to indexTransactionCommit to commit.
type placement struct {
	flotsam        Flotsam
	newSatpoint    store.SatPoint
	sentToCoinbase bool
	scriptPubkey   []byte // nil if the inscription left the UTXO set (lost)
	outputValue    *uint64
}

// indexTransactionCommit commits one flotsam's new location,
// journals it, and (for a newly admitted inscription) assigns its
// inscription number, sequence number, sat, charms and parent edges —
// the Go transliteration of update_inscription_location.
func (u *Updater) indexTransactionCommit(tx *store.Tx, ranges []satrange.Range, p placement) error {
	f := p.flotsam

	var unbound bool
	var sequenceNumber uint32

	if f.Origin.IsOld {
		if err := tx.RemoveAllForSatpoint(f.Origin.OldSatpoint); err != nil {
			return err
		}
		seq, ok := tx.GetSequenceNumberForID(f.ID)
		if !ok {
			return fmt.Errorf("updater: missing sequence number for transferred inscription %v", f.ID)
		}
		sequenceNumber = seq

		newPubkeyHex := hex.EncodeToString(p.scriptPubkey)
		var newOutputValue uint64
		if p.outputValue != nil {
			newOutputValue = *p.outputValue
		}
		address, err := u.addressOrInvalid(p.scriptPubkey)
		if err != nil {
			return err
		}
		if err := u.Journal.TransferLine(u.height, f.ID, f.Origin.OldSatpoint, p.newSatpoint, p.sentToCoinbase, newPubkeyHex, newOutputValue, address, u.timestamp); err != nil {
			return err
		}
		if err := u.Events.Emit(events.Event{Transferred: &events.InscriptionTransferred{
			BlockHeight:    u.height,
			InscriptionID:  f.ID,
			NewLocation:    p.newSatpoint,
			OldLocation:    f.Origin.OldSatpoint,
			SequenceNumber: sequenceNumber,
		}}); err != nil {
			return err
		}
		unbound = false
	} else {
		o := f.Origin

		var number int32
		if o.Cursed {
			number = -(int32(u.cursedCount) + 1)
			u.cursedCount++
		} else {
			number = int32(u.blessedCount)
			u.blessedCount++
		}

		sequenceNumber = u.nextSequenceNumber
		u.nextSequenceNumber++

		if err := tx.PutSequenceNumberForNumber(number, sequenceNumber); err != nil {
			return err
		}

		var sat *ordinals.Sat
		if !o.Unbound && ranges != nil {
			s := satrange.CalculateSat(ranges, f.Offset)
			sat = &s
		}

		var charms uint16
		if o.Cursed {
			charms |= uint16(ordinals.CharmCursed)
		}
		if o.Reinscription {
			charms |= uint16(ordinals.CharmReinscription)
		}
		if sat != nil {
			charms |= uint16(sat.Charms())
		}
		if p.newSatpoint.Outpoint.IsNull() {
			charms |= uint16(ordinals.CharmLost)
		}
		if o.Unbound {
			charms |= uint16(ordinals.CharmUnbound)
		}
		if o.Vindicated {
			charms |= uint16(ordinals.CharmVindicated)
		}

		if sat != nil {
			if err := tx.InsertSatSequence(uint64(*sat), sequenceNumber); err != nil {
				return err
			}
		}

		parentSequenceNumbers := make([]uint32, 0, len(o.Parents))
		for _, parentID := range o.Parents {
			parentSeq, ok := tx.GetSequenceNumberForID(parentID)
			if !ok {
				continue
			}
			if err := tx.InsertChild(parentSeq, sequenceNumber); err != nil {
				return err
			}
			parentSequenceNumbers = append(parentSequenceNumbers, parentSeq)
		}

		contentTypeStr := string(o.ContentType)
		metaprotocolStr := string(o.Metaprotocol)
		sha := contentHash(contentTypeStr, o.Body)

		jsonBody := isJSON(o.Body)
		textBody := isTextContentType(contentTypeStr)
		var contentField string
		switch {
		case jsonBody:
			contentField = minifyJSON(o.Body)
		case textBody:
			contentField = stripWhitespace(string(o.Body))
		default:
			contentField = string(o.Body)
		}

		address, err := u.addressOrInvalid(p.scriptPubkey)
		if err != nil {
			return err
		}
		var outputValue uint64
		if p.outputValue != nil {
			outputValue = *p.outputValue
		}
		var location *store.SatPoint
		if !o.Unbound {
			loc := p.newSatpoint
			location = &loc
		}
		var satField *uint64
		if sat != nil {
			n := uint64(*sat)
			satField = &n
		}
		delegateStr := ""
		if o.Delegate != nil {
			delegateStr = idHex(*o.Delegate)
		}

		record := events.ContentRecord{
			Height:            u.height,
			InscriptionNumber: number,
			InscriptionID:     f.ID,
			IsJSON:            jsonBody,
			ContentType:       contentTypeStr,
			Metaprotocol:      metaprotocolStr,
			Content:           contentField,
			Parents:           o.Parents,
			Sat:               satField,
			Timestamp:         u.timestamp,
			Location:          location,
			Charms:            charms,
			OutputValue:       outputValue,
			Address:           address,
			Delegate:          delegateStr,
			SHA:               sha,
			Rune:              string(o.Rune),
			Metadata:          string(o.Metadata),
		}

		isJSONOrText := jsonBody || textBody
		if !o.Unbound && isJSONOrText {
			if err := u.Journal.ContentLine(record); err != nil {
				return err
			}
		} else {
			if err := u.Journal.NumberToIDLine(u.height, number, f.ID, o.Parents); err != nil {
				return err
			}
			if err := u.Journal.ContentLine(record); err != nil {
				return err
			}
		}

		if err := u.Events.Emit(events.Event{Created: &events.InscriptionCreated{
			BlockHeight:          u.height,
			Charms:                charms,
			InscriptionID:         f.ID,
			Location:              location,
			ParentInscriptionIDs: o.Parents,
			SequenceNumber:       sequenceNumber,
		}}); err != nil {
			return err
		}

		entry := store.InscriptionEntry{
			Charms:         charms,
			Fee:            o.Fee,
			Height:         u.height,
			ID:             f.ID,
			Number:         number,
			Parents:        parentSequenceNumbers,
			Sat:            sat,
			SequenceNumber: sequenceNumber,
			Timestamp:      u.timestamp,
		}
		if err := tx.PutEntry(sequenceNumber, entry); err != nil {
			return err
		}
		if err := tx.PutSequenceNumberForID(f.ID, sequenceNumber); err != nil {
			return err
		}

		if !o.Hidden {
			if err := tx.InsertHomeInscription(sequenceNumber, f.ID); err != nil {
				return err
			}
		}

		unbound = o.Unbound
	}

	var satpoint store.SatPoint
	if unbound {
		satpoint = store.SatPoint{Outpoint: store.UnboundOutPoint, Offset: u.unboundCount}
		u.unboundCount++
	} else {
		satpoint = p.newSatpoint
	}

	if err := tx.InsertSatpointSequence(satpoint, sequenceNumber); err != nil {
		return err
	}
	return tx.PutSatpointForSequence(sequenceNumber, satpoint)
}

func (u *Updater) addressOrInvalid(script []byte) (string, error) {
	if script == nil {
		return "Invalid script", nil
	}
	addr, err := u.Params.AddressFromScript(script)
	if err != nil {
		return "Invalid address", nil
	}
	return addr, nil
}

func idHex(id envelope.InscriptionID) string {
	return hex.EncodeToString(id.TxID[:])
}
