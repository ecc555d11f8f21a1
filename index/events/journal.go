package events

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"rubin.dev/node/envelope"
	"rubin.dev/node/index/store"
)

// Journal is the append-only per-chain text journal described in
// spec.md §6, one *os.File opened lazily on first touched block and
// guarded by its own mutex — unlike the teacher's single global file
// handle protected only by the store's per-block transaction (see
// DESIGN.md for why the journal needs its own lock: nothing else in
// this package serializes writers the way one bbolt Update call does
// for the store).
type Journal struct {
	mu          sync.Mutex
	f           *os.File
	path        string
	firstInBlock bool
	height      uint64
}

// OpenJournal returns a Journal that will create/append to
// <chainDir>/inscriptions.txt on first write.
func OpenJournal(chainDir string) *Journal {
	return &Journal{path: filepath.Join(chainDir, "inscriptions.txt")}
}

func (j *Journal) ensureOpen() error {
	if j.f != nil {
		return nil
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path derived from operator-controlled chain directory.
	if err != nil {
		return fmt.Errorf("events: open journal: %w", err)
	}
	j.f = f
	return nil
}

// BeginBlock marks the start of a new block's writes; the block_start
// line is written lazily, only if the block actually touches an
// inscription (mirrors first_in_block in the original updater).
func (j *Journal) BeginBlock(height uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.height = height
	j.firstInBlock = true
}

func (j *Journal) writeLine(line string) error {
	if err := j.ensureOpen(); err != nil {
		return err
	}
	if j.firstInBlock {
		if _, err := fmt.Fprintf(j.f, "cmd~||~%d~||~block_start\n", j.height); err != nil {
			return fmt.Errorf("events: write block_start: %w", err)
		}
		j.firstInBlock = false
	}
	if _, err := fmt.Fprintln(j.f, line); err != nil {
		return fmt.Errorf("events: write line: %w", err)
	}
	return nil
}

// EndBlock writes the block_end marker only if the block touched an
// inscription (i.e. BeginBlock's lazily-deferred block_start actually
// fired), then flushes.
func (j *Journal) EndBlock() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.firstInBlock {
		return nil
	}
	if err := j.ensureOpen(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(j.f, "cmd~||~%d~||~block_end\n", j.height); err != nil {
		return fmt.Errorf("events: write block_end: %w", err)
	}
	return j.f.Sync()
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.f == nil {
		return nil
	}
	return j.f.Close()
}

func idString(id envelope.InscriptionID) string {
	return hex.EncodeToString(id.TxID[:]) + "i" + strconv.FormatUint(uint64(id.Index), 10)
}

func satpointString(sp store.SatPoint) string {
	if sp.Outpoint.IsNull() {
		return "null:" + strconv.FormatUint(sp.Offset, 10)
	}
	return hex.EncodeToString(sp.Outpoint.TxID[:]) + ":" +
		strconv.FormatUint(uint64(sp.Outpoint.Vout), 10) + ":" +
		strconv.FormatUint(sp.Offset, 10)
}

func parentsCSV(parents []envelope.InscriptionID) string {
	strs := make([]string, len(parents))
	for i, p := range parents {
		strs[i] = idString(p)
	}
	return strings.Join(strs, ",")
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func optUint64(v *uint64) string {
	if v == nil {
		return "None"
	}
	return strconv.FormatUint(*v, 10)
}

// TransferLine writes the §6 "transfer" journal record.
func (j *Journal) TransferLine(height uint64, id envelope.InscriptionID, oldLoc, newLoc store.SatPoint, sentAsFee bool, newPubkeyHex string, newOutputValue uint64, newAddress string, timestamp uint32) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	line := fmt.Sprintf(
		"cmd~||~height:%d~||~insert~||~transfer~||~inscription_id:%s~||~old_location:%s~||~new_location:%s~||~sent_as_fee:%s~||~new_pubkey:%s~||~new_output_value:%d~||~new_address:%s~||~timestamp:%d",
		height, idString(id), satpointString(oldLoc), satpointString(newLoc), boolStr(sentAsFee), newPubkeyHex, newOutputValue, newAddress, timestamp,
	)
	return j.writeLine(line)
}

// ContentRecord carries every field the §4.5.1 step 8 "content" line
// needs.
type ContentRecord struct {
	Height            uint64
	InscriptionNumber int32
	InscriptionID     envelope.InscriptionID
	IsJSON            bool
	ContentType       string
	Metaprotocol      string
	Content           string // minified JSON, stripped text, or empty
	Parents           []envelope.InscriptionID
	Sat               *uint64
	Timestamp         uint32
	Location          *store.SatPoint // nil if unbound
	Charms            uint16
	OutputValue       uint64
	Address           string
	Delegate          string
	SHA               string // hex sha3-256, "" if omitted
	Rune              string
	Metadata          string
}

// ContentLine writes the §4.5.1 step 8 "content" journal record.
func (j *Journal) ContentLine(r ContentRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	location := "None"
	if r.Location != nil {
		location = satpointString(*r.Location)
	}
	line := fmt.Sprintf(
		"cmd~||~height:%d~||~insert~||~content~||~inscription_number:%d~||~inscription_id:%s~||~is_json:%s~||~content_type:%s~||~metaprotocol:%s~||~content:%s~||~parents:%s~||~sat:%s~||~timestamp:%d~||~location:%s~||~charms:%d~||~output_value:%d~||~address:%s~||~delegate:%s~||~sha:%s~||~rune:%s~||~metadata:%s",
		r.Height, r.InscriptionNumber, idString(r.InscriptionID), boolStr(r.IsJSON), r.ContentType, r.Metaprotocol, r.Content,
		parentsCSV(r.Parents), optUint64(r.Sat), r.Timestamp, location, r.Charms, r.OutputValue, r.Address, r.Delegate, r.SHA, r.Rune, r.Metadata,
	)
	return j.writeLine(line)
}

// NumberToIDLine writes the §6 non-text/non-json "number_to_id" record.
func (j *Journal) NumberToIDLine(height uint64, number int32, id envelope.InscriptionID, parents []envelope.InscriptionID) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	line := fmt.Sprintf("cmd~||~%d~||~insert~||~number_to_id~||~%d~||~%s~||~%s", height, number, idString(id), parentsCSV(parents))
	return j.writeLine(line)
}
